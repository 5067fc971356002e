package shutdown

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v3/host"

	"shutdown-timer/internal/config"
	"shutdown-timer/internal/domain"
)

// Platform describes the machine the controller would shut down.
type Platform struct {
	OS              string
	Platform        string
	PlatformVersion string
	Hostname        string
}

// DetectPlatform asks gopsutil for host details and falls back to
// runtime.GOOS when they are unavailable.
func DetectPlatform() Platform {
	info, err := host.Info()
	if err != nil || info == nil || info.OS == "" {
		return Platform{OS: runtime.GOOS}
	}
	return Platform{
		OS:              strings.ToLower(info.OS),
		Platform:        info.Platform,
		PlatformVersion: info.PlatformVersion,
		Hostname:        info.Hostname,
	}
}

// BackendFor resolves a backend name; "auto" maps to the detected OS.
func BackendFor(cfg config.ShutdownConfig, osName string) (Backend, error) {
	name := cfg.Backend
	if name == config.BackendAuto || name == config.BackendDryRun {
		name = osName
	}
	switch name {
	case config.BackendWindows:
		return WindowsBackend(cfg.Force), nil
	case config.BackendLinux:
		return LinuxBackend(), nil
	case config.BackendDarwin:
		return DarwinBackend(), nil
	case config.BackendCustom:
		return CustomBackend(cfg.ScheduleCommand, cfg.CancelCommand)
	default:
		return Backend{}, fmt.Errorf("no shutdown backend for %q", name)
	}
}

// New builds the controller described by cfg.
func New(cfg config.ShutdownConfig, p Platform) (domain.ShutdownController, error) {
	backend, err := BackendFor(cfg, p.OS)
	if err != nil {
		if cfg.Backend != config.BackendDryRun {
			return nil, err
		}
		// Dry runs still work on platforms without a known facility.
		backend = LinuxBackend()
	}
	if cfg.Backend == config.BackendDryRun {
		return NewDryRunController(backend), nil
	}
	return NewCommandController(backend, WithTimeout(cfg.Timeout)), nil
}
