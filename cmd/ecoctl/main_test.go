package main

import "testing"

func TestRootCmd_Subcommands(t *testing.T) {
	root := rootCmd()

	for _, path := range [][]string{
		{"migrate"},
		{"seed"},
		{"import"},
		{"score"},
		{"leaderboard", "refresh"},
		{"digest"},
		{"version"},
	} {
		cmd, _, err := root.Find(path)
		if err != nil {
			t.Errorf("Find(%v) error = %v", path, err)
			continue
		}
		if cmd.Name() != path[len(path)-1] {
			t.Errorf("Find(%v) = %s", path, cmd.Name())
		}
	}
}

func TestImportCmd_RequiredFlags(t *testing.T) {
	cmd := importCmd()
	for _, name := range []string{"user", "file"} {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			t.Fatalf("flag %s missing", name)
		}
		if _, ok := flag.Annotations["cobra_annotation_bash_completion_one_required_flag"]; !ok {
			t.Errorf("flag %s is not required", name)
		}
	}
}
