package version

import "fmt"

// GosolvVersion indicates what version of gosolv the binary belongs to
var GosolvVersion string

// GitCommit indicates which git commit the binary was built from
var GitCommit string

// String returns a pretty string concatenation of GosolvVersion and GitCommit
func String() string {
	return fmt.Sprintf("Gosolv version: %s\n Git commit: %s\n", GosolvVersion, GitCommit)
}
