package version

import (
	"fmt"
	"regexp"
	"strconv"
)

const (
	FMT_VERSTR = "v%v.%v.%v-%x"
)

var (
	// it is changed using ldflags.
	//  ex) -ldflags "... -X 'github.com/logcal/logcal-go/cmd/version.GitCommit=$(XXX)'"
	Version   string
	GitCommit string

	majorVer  uint64 = 0
	minorVer  uint64 = 1
	patchVer  uint64 = 0
	commitVer uint64 = 0
)

func init() {
	parseVersions(Version, GitCommit)
}

func parseVersions(vers ...string) {
	versionStr := vers[0]
	gitCommit := vers[1]

	if versionStr == "" {
		return
	}

	re := regexp.MustCompile(`v(\d+)\.(\d+)\.(\d+)`)
	matches := re.FindStringSubmatch(versionStr)
	if matches == nil {
		panic(fmt.Errorf("invalid version string: %v", versionStr))
	}
	majorVer, _ = strconv.ParseUint(matches[1], 10, 64)
	minorVer, _ = strconv.ParseUint(matches[2], 10, 64)
	patchVer, _ = strconv.ParseUint(matches[3], 10, 64)

	if gitCommit != "" {
		var err error
		commitVer, err = strconv.ParseUint(gitCommit, 16, 64)
		if err != nil {
			panic(fmt.Errorf("error: %v, invalid git commit: %v", err, gitCommit))
		}
	}
}

func String() string {
	return fmt.Sprintf(FMT_VERSTR, majorVer, minorVer, patchVer, commitVer)
}

func Major() uint64 {
	return majorVer
}

func Minor() uint64 {
	return minorVer
}

func Patch() uint64 {
	return patchVer
}

func CommitHash() uint64 {
	return commitVer
}
