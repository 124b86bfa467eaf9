package version // import "github.com/Xunop/aldiaa/internal/version"

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// Version is the application version. The minor part is the schema version:
// bump it whenever the shape of the books or session tables changes.
var Version = "0.2.0"

func GetCurrentVersion() string {
	return Version
}

// GetMinorVersion returns "major.minor" of a version string.
func GetMinorVersion(version string) string {
	versionList := strings.Split(version, ".")
	if len(versionList) < 2 {
		return ""
	}
	return versionList[0] + "." + versionList[1]
}

// GetSchemaVersion drops the patch number, patches never touch the schema.
func GetSchemaVersion(version string) string {
	minor := GetMinorVersion(version)
	if minor == "" {
		return ""
	}
	return minor + ".0"
}

// IsVersionGreaterOrEqualThan returns true if version is greater than or equal to target.
func IsVersionGreaterOrEqualThan(version, target string) bool {
	return semver.Compare(fmt.Sprintf("v%s", version), fmt.Sprintf("v%s", target)) > -1
}

// IsVersionGreaterThan returns true if version is greater than target.
func IsVersionGreaterThan(version, target string) bool {
	return semver.Compare(fmt.Sprintf("v%s", version), fmt.Sprintf("v%s", target)) > 0
}

type SortVersion []string

func (s SortVersion) Len() int {
	return len(s)
}

func (s SortVersion) Swap(i, j int) {
	s[i], s[j] = s[j], s[i]
}

func (s SortVersion) Less(i, j int) bool {
	v1 := fmt.Sprintf("v%s", s[i])
	v2 := fmt.Sprintf("v%s", s[j])
	return semver.Compare(v1, v2) == -1
}
