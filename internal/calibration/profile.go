package calibration

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/agbru/limbcalc/internal/config"
	"github.com/agbru/limbcalc/internal/limb"
)

const (
	// CurrentProfileVersion is bumped whenever the profile layout or the
	// meaning of a threshold changes.
	CurrentProfileVersion = 1
	// DefaultProfileFileName is stored in the user's home directory.
	DefaultProfileFileName = ".limbcalc_calibration.toml"
	// ProfileMaxAge is how long a profile is trusted before recalibration.
	ProfileMaxAge = 30 * 24 * time.Hour
)

// CalibrationProfile records the thresholds measured on one machine for one
// limb base.
type CalibrationProfile struct {
	ProfileVersion int       `toml:"profile_version"`
	CalibratedAt   time.Time `toml:"calibrated_at"`

	NumCPU      int    `toml:"num_cpu"`
	GOARCH      string `toml:"goarch"`
	GOOS        string `toml:"goos"`
	GoVersion   string `toml:"go_version"`
	WordSize    int    `toml:"word_size"`
	CPUFeatures string `toml:"cpu_features"`
	LimbBase    string `toml:"limb_base"`

	OptimalKaratsubaThreshold int `toml:"optimal_karatsuba_threshold"`
	// OptimalParallelThreshold of 0 means sequential Karatsuba was fastest.
	OptimalParallelThreshold int `toml:"optimal_parallel_threshold"`

	CalibrationLimbs int    `toml:"calibration_limbs"`
	CalibrationTime  string `toml:"calibration_time"`
}

// NewProfile returns a profile stamped with the current hardware.
func NewProfile() *CalibrationProfile {
	return &CalibrationProfile{
		ProfileVersion: CurrentProfileVersion,
		CalibratedAt:   time.Now(),
		NumCPU:         runtime.NumCPU(),
		GOARCH:         runtime.GOARCH,
		GOOS:           runtime.GOOS,
		GoVersion:      runtime.Version(),
		WordSize:       limb.WordBits,
		CPUFeatures:    limb.GetCPUFeatures().String(),
		LimbBase:       limb.Native().String(),
	}
}

// IsValid reports whether the profile was produced by this profile version
// on hardware matching the running machine.
func (p *CalibrationProfile) IsValid() bool {
	if p == nil {
		return false
	}
	return p.ProfileVersion == CurrentProfileVersion &&
		p.NumCPU == runtime.NumCPU() &&
		p.GOARCH == runtime.GOARCH &&
		p.WordSize == limb.WordBits
}

// IsStale reports whether the profile is older than maxAge. A nil profile
// is always stale.
func (p *CalibrationProfile) IsStale(maxAge time.Duration) bool {
	if p == nil {
		return true
	}
	return time.Since(p.CalibratedAt) > maxAge
}

// String summarizes the profile on one line.
func (p *CalibrationProfile) String() string {
	return fmt.Sprintf("profile v%d (%s/%s, %d CPU, %d-bit, base %s): karatsuba=%d limbs, parallel=%d limbs, calibrated %s",
		p.ProfileVersion, p.GOOS, p.GOARCH, p.NumCPU, p.WordSize, p.LimbBase,
		p.OptimalKaratsubaThreshold, p.OptimalParallelThreshold,
		p.CalibratedAt.Format(time.RFC3339))
}

// SaveProfile writes the profile as TOML. The file is replaced atomically.
func (p *CalibrationProfile) SaveProfile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating profile directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".limbcalc-profile-*")
	if err != nil {
		return fmt.Errorf("creating profile: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := toml.NewEncoder(tmp).Encode(p); err != nil {
		tmp.Close()
		return fmt.Errorf("encoding profile: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing profile: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}

func loadProfile(path string) (*CalibrationProfile, error) {
	var p CalibrationProfile
	md, err := toml.DecodeFile(path, &p)
	if err != nil {
		return nil, fmt.Errorf("loading profile %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("loading profile %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return &p, nil
}

// LoadOrCreateProfile loads the profile at path, or returns a fresh one when
// the file is missing or unreadable. loaded reports which happened.
func LoadOrCreateProfile(path string) (profile *CalibrationProfile, loaded bool) {
	p, err := loadProfile(path)
	if err != nil {
		return NewProfile(), false
	}
	return p, true
}

// GetDefaultProfilePath returns the profile location in the user's home
// directory, or in the working directory when the home is unknown.
func GetDefaultProfilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultProfileFileName
	}
	return filepath.Join(home, DefaultProfileFileName)
}

// LoadCachedCalibration fills thresholds still unresolved in cfg from a
// valid, fresh profile measured for the same limb base. ok reports whether
// a profile was used.
func LoadCachedCalibration(cfg config.AppConfig, path string) (_ config.AppConfig, ok bool) {
	if path == "" {
		path = GetDefaultProfilePath()
	}
	p, err := loadProfile(path)
	if err != nil || !p.IsValid() || p.IsStale(ProfileMaxAge) {
		return cfg, false
	}
	base, err := limb.ParseBase(cfg.LimbBase)
	if err != nil || base.String() != p.LimbBase {
		return cfg, false
	}
	return p.Apply(cfg), true
}

// Apply copies the profile thresholds into cfg where cfg has none.
func (p *CalibrationProfile) Apply(cfg config.AppConfig) config.AppConfig {
	if cfg.Threshold == 0 && p.OptimalKaratsubaThreshold > 0 {
		cfg.Threshold = p.OptimalKaratsubaThreshold
	}
	if cfg.ParallelThreshold == 0 {
		cfg.ParallelThreshold = p.OptimalParallelThreshold
		if cfg.ParallelThreshold == 0 {
			cfg.ParallelThreshold = -1
		}
	}
	return cfg
}

// Resolver adapts LoadCachedCalibration to the config resolution chain.
func Resolver(path string) config.Resolver {
	return func(cfg config.AppConfig) config.AppConfig {
		cfg, _ = LoadCachedCalibration(cfg, path)
		return cfg
	}
}
