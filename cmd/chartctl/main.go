// chartctl prints HR dashboard chart series from the command line.
//
// Usage:
//
//	chartctl monthly --url http://localhost:8080 --token $SUPABASE_ACCESS_TOKEN
//	chartctl by-job --url http://localhost:8080 --token $SUPABASE_ACCESS_TOKEN
package main

import (
	"fmt"
	"os"

	"go-hr-dashboard-backend/cmd/chartctl/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
