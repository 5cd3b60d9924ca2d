package handler

import (
	"net/http"
	"os"
	"runtime"
	"runtime/debug"
	"sync"

	"github.com/osse101/BlueprintCost_Go/internal/costing"
)

// VersionInfo contains build information and the versions of the loaded data
type VersionInfo struct {
	Version        string `json:"version"`
	GoVersion      string `json:"go_version"`
	BuildTime      string `json:"build_time,omitempty"`
	GitCommit      string `json:"git_commit,omitempty"`
	CatalogVersion string `json:"catalog_version,omitempty"`
	PricesVersion  string `json:"prices_version,omitempty"`
}

// Build-time variables (injected via ldflags)
var (
	Version   = "dev"
	BuildTime = ""
	GitCommit = ""
)

// buildInfo resolves the static part of VersionInfo once. Values not set via
// ldflags fall back to VERSION and to the VCS stamp of the Go toolchain.
var buildInfo = sync.OnceValue(func() VersionInfo {
	info := VersionInfo{
		Version:   Version,
		GoVersion: runtime.Version(),
		BuildTime: BuildTime,
		GitCommit: GitCommit,
	}
	if info.Version == "" || info.Version == "dev" {
		if env := os.Getenv("VERSION"); env != "" {
			info.Version = env
		} else {
			info.Version = "dev"
		}
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			switch {
			case s.Key == "vcs.revision" && info.GitCommit == "":
				info.GitCommit = s.Value
			case s.Key == "vcs.time" && info.BuildTime == "":
				info.BuildTime = s.Value
			}
		}
	}
	return info
})

// HandleVersion returns build information and the digests of the loaded data
// @Summary Version info
// @Tags health
// @Produce json
// @Success 200 {object} VersionInfo
// @Router /version [get]
func HandleVersion(svc costing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info := buildInfo()
		if ds, ok := svc.Info(); ok {
			info.CatalogVersion = ds.CatalogVersion
			info.PricesVersion = ds.PricesVersion
		}
		respondJSON(w, http.StatusOK, info)
	}
}
