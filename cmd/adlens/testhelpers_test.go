package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with the given args and returns the combined
// output. Flag state is reset afterwards so tests stay independent.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	resetFlags(t)
	return buf.String(), err
}

func resetFlags(t *testing.T) {
	t.Helper()
	for _, cmd := range []*cobra.Command{rootCmd, analyzeCmd, reportCmd} {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			if f.Changed {
				require.NoError(t, f.Value.Set(f.DefValue))
				f.Changed = false
			}
		})
	}
	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			require.NoError(t, f.Value.Set(f.DefValue))
			f.Changed = false
		}
	})
}

// writeExport writes a small but complete CSV export and returns its path.
func writeExport(t *testing.T) string {
	t.Helper()
	content := `Ad name,Impressions,Three-second video views,ThruPlay Actions,Link Clicks,ROAS
Hero Video,10000,900,450,180,3.1
Slow Burn,12000,480,96,48,0.8
Mid Pack,8000,560,200,72,1.6
`
	path := filepath.Join(t.TempDir(), "export.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
