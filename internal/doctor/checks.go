package doctor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/conn-castle/omnisharp-client/internal/acquire"
	"github.com/conn-castle/omnisharp-client/internal/config"
	"github.com/conn-castle/omnisharp-client/internal/identity"
	"github.com/conn-castle/omnisharp-client/internal/marker"
	"github.com/conn-castle/omnisharp-client/internal/messages"
	"github.com/conn-castle/omnisharp-client/internal/probe"
)

var (
	osStat         = os.Stat
	loadConfigFunc = config.Load
	findRuntimeFn  = acquire.FindRuntimeByID
)

// Prober reports which runtime can host an identity.
type Prober interface {
	IsSupportedRuntime(ctx context.Context, id identity.Identity) (probe.Support, error)
}

// Inputs are the collaborators a full doctor run needs.
type Inputs struct {
	ConfigPath string
	Getenv     func(string) string
	Prober     Prober
}

// Run executes every check in order. Checks that depend on a usable config
// are skipped when the config cannot be loaded.
func Run(ctx context.Context, in Inputs) []Result {
	results, cfg := CheckConfig(in.ConfigPath)
	if cfg == nil {
		return results
	}
	if in.Getenv != nil {
		cfg.ApplyEnv(in.Getenv)
	}
	req, err := cfg.Request()
	if err != nil {
		return append(results, Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameConfig,
			Message:        fmt.Sprintf(messages.DoctorConfigRequestFailedFmt, err),
			Recommendation: messages.DoctorConfigRecommend,
		})
	}
	id := identity.Resolve(req)
	results = append(results, CheckIdentity(id))
	results = append(results, CheckInstall(ctx, id)...)
	if in.Prober != nil {
		results = append(results, CheckRuntime(ctx, in.Prober, id))
	}
	return results
}

// CheckConfig loads the config file at path. A missing file is fine; the
// returned config is nil only when loading failed.
func CheckConfig(path string) ([]Result, *config.Config) {
	if _, err := osStat(path); errors.Is(err, os.ErrNotExist) {
		return []Result{{
			Status:    StatusOK,
			CheckName: messages.DoctorCheckNameConfig,
			Message:   fmt.Sprintf(messages.DoctorConfigMissingFmt, path),
		}}, &config.Config{}
	}
	cfg, err := loadConfigFunc(path)
	if err != nil {
		result := Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameConfig,
			Message:        fmt.Sprintf(messages.DoctorConfigFailedFmt, err),
			Recommendation: messages.DoctorConfigRecommend,
		}
		if errors.Is(err, config.ErrConfigValidation) {
			if details, detailErr := configUnknownKeys(path); detailErr == nil && len(details) > 0 {
				result.Recommendation = formatUnknownKeyRecommendation(path, details)
			}
		}
		return []Result{result}, nil
	}
	return []Result{{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameConfig,
		Message:   fmt.Sprintf(messages.DoctorConfigLoadedFmt, path),
	}}, cfg
}

// CheckIdentity summarizes the resolved build.
func CheckIdentity(id identity.Identity) Result {
	return Result{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameIdentity,
		Message:   fmt.Sprintf(messages.DoctorIdentityFmt, id.ID(), id.Version(), id.InstallPath()),
	}
}

// CheckInstall inspects the version marker and the server executable.
// When a server path override is set only the override is checked.
func CheckInstall(ctx context.Context, id identity.Identity) []Result {
	if override := id.Launch().Executable; override != "" && !isInstalledExecutable(id, override) {
		return []Result{checkOverride(override)}
	}

	installed, ok, err := marker.Read(id.InstallPath())
	var markerResult Result
	current := false
	switch {
	case err != nil:
		markerResult = Result{
			Status:    StatusFail,
			CheckName: messages.DoctorCheckNameMarker,
			Message:   fmt.Sprintf(messages.DoctorMarkerReadFailedFmt, err),
		}
	case !ok:
		markerResult = Result{
			Status:         StatusWarn,
			CheckName:      messages.DoctorCheckNameMarker,
			Message:        fmt.Sprintf(messages.DoctorMarkerMissingFmt, id.InstallPath()),
			Recommendation: messages.DoctorInstallRecommend,
		}
	case installed != id.Version():
		markerResult = Result{
			Status:         StatusWarn,
			CheckName:      messages.DoctorCheckNameMarker,
			Message:        fmt.Sprintf(messages.DoctorMarkerStaleFmt, installed, id.Version()),
			Recommendation: messages.DoctorInstallRecommend,
		}
	default:
		current = true
		markerResult = Result{
			Status:    StatusOK,
			CheckName: messages.DoctorCheckNameMarker,
			Message:   fmt.Sprintf(messages.DoctorMarkerCurrentFmt, installed),
		}
	}

	return []Result{markerResult, checkExecutable(ctx, id, current)}
}

func checkExecutable(ctx context.Context, id identity.Identity, markerCurrent bool) Result {
	path, found, err := findRuntimeFn(ctx, id.ID(), id.DestinationRoot())
	switch {
	case err != nil:
		return Result{
			Status:    StatusFail,
			CheckName: messages.DoctorCheckNameExecutable,
			Message:   fmt.Sprintf(messages.DoctorExecutableScanFailedFmt, err),
		}
	case found:
		return Result{
			Status:    StatusOK,
			CheckName: messages.DoctorCheckNameExecutable,
			Message:   fmt.Sprintf(messages.DoctorExecutableFoundFmt, path),
		}
	case markerCurrent:
		// The marker claims the build is present but the executable is gone.
		return Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameExecutable,
			Message:        fmt.Sprintf(messages.DoctorExecutableCorruptFmt, id.InstallPath()),
			Recommendation: messages.DoctorExecutableCorruptRecommend,
		}
	default:
		return Result{
			Status:         StatusWarn,
			CheckName:      messages.DoctorCheckNameExecutable,
			Message:        fmt.Sprintf(messages.DoctorExecutableMissingFmt, id.DestinationRoot()),
			Recommendation: messages.DoctorInstallRecommend,
		}
	}
}

func checkOverride(path string) Result {
	info, err := osStat(path)
	if err != nil || info.IsDir() {
		return Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameOverride,
			Message:        fmt.Sprintf(messages.DoctorOverrideMissingFmt, path),
			Recommendation: messages.DoctorOverrideRecommend,
		}
	}
	return Result{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameOverride,
		Message:   fmt.Sprintf(messages.DoctorOverrideFoundFmt, path),
	}
}

// isInstalledExecutable reports whether exe lives in the identity's own
// install directory, which is the case unless a server path override is set.
func isInstalledExecutable(id identity.Identity, exe string) bool {
	return filepath.Dir(exe) == filepath.Clean(id.InstallPath())
}

// CheckRuntime probes the host for a runtime able to run id.
func CheckRuntime(ctx context.Context, p Prober, id identity.Identity) Result {
	support, err := p.IsSupportedRuntime(ctx, id)
	if err != nil {
		return Result{
			Status:    StatusFail,
			CheckName: messages.DoctorCheckNameRuntime,
			Message:   fmt.Sprintf(messages.DoctorRuntimeFailedFmt, err),
		}
	}
	if support.Runtime != id.Kind() {
		return Result{
			Status:         StatusWarn,
			CheckName:      messages.DoctorCheckNameRuntime,
			Message:        fmt.Sprintf(messages.DoctorRuntimeDegradedFmt, id.Kind(), support.Runtime),
			Recommendation: messages.DoctorRuntimeDegradedRecommend,
		}
	}
	return Result{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameRuntime,
		Message:   fmt.Sprintf(messages.DoctorRuntimeOKFmt, support.Runtime),
	}
}
