package seed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ecoimpact/backend/internal/application/usecase/transaction"
)

var requiredColumns = []string{"amount", "date"}

// ReadTransactionsCSV reads raw transactions from a CSV export with a header
// row. Columns are matched by name: id, name, category_id, amount, date.
// Missing ids are left empty for the normalizer to assign.
func ReadTransactionsCSV(r io.Reader) ([]transaction.RawTransaction, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("csv is empty")
		}
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("csv is missing the %s column", name)
		}
	}

	field := func(record []string, name string) string {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var raws []transaction.RawTransaction
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv line %d: %w", line, err)
		}
		raws = append(raws, transaction.RawTransaction{
			ID:         field(record, "id"),
			Name:       field(record, "name"),
			CategoryID: field(record, "category_id"),
			Amount:     field(record, "amount"),
			Date:       field(record, "date"),
		})
	}
	return raws, nil
}
