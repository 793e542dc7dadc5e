package cli

import "github.com/spf13/pflag"

// addProjectFlag registers the shared --project selector flag and marks it
// required on the owning command by the caller.
func addProjectFlag(fs *pflag.FlagSet, target *string) {
	fs.StringVar(target, "project", "", "Project ID or name")
}
