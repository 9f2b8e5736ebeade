package version

import (
	"fmt"
	"runtime"
)

var (
	Version   = "0.3.1"
	AppName   = "supaquery"
	BuildDate = "unknown"
)

// Info is the build information reported at startup.
type Info struct {
	AppName   string `json:"app_name"`
	Version   string `json:"version"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetInfo collects Info from the linker variables and the runtime.
func GetInfo() Info {
	return Info{
		AppName:   AppName,
		Version:   Version,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// ClientInfo is the value sent in the X-Client-Info header.
func ClientInfo() string {
	return fmt.Sprintf("%s-go/%s", AppName, Version)
}
