package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Tuning holds every gameplay constant of a session.
// Field names double as YAML keys so a tuning file can override any subset.
type Tuning struct {
	// World
	WorldWidth  float64 `yaml:"worldWidth"`
	WorldHeight float64 `yaml:"worldHeight"`
	Gravity     float64 `yaml:"gravity"` // px/s², applies to targets and fragments

	// Player
	PlayerX        float64 `yaml:"playerX"`
	PlayerY        float64 `yaml:"playerY"`
	PlayerSpeed    float64 `yaml:"playerSpeed"`
	PlayerSize     float64 `yaml:"playerSize"`
	PlayerBody     float64 `yaml:"playerBody"`
	RequiredPress  int     `yaml:"requiredPresses"`
	PressIncrement int     `yaml:"pressIncrement"`

	// Bullets
	BulletSpeed   float64 `yaml:"bulletSpeed"` // Upward, positive number
	BulletOffsetY float64 `yaml:"bulletOffsetY"`
	BulletSize    float64 `yaml:"bulletSize"`
	BulletBody    float64 `yaml:"bulletBody"`

	// Targets
	SpawnInterval time.Duration `yaml:"spawnInterval"`
	SpawnMinX     int           `yaml:"spawnMinX"`
	SpawnMaxX     int           `yaml:"spawnMaxX"`
	TargetMinVX   int           `yaml:"targetMinVX"`
	TargetMaxVX   int           `yaml:"targetMaxVX"`
	TargetMinVY   int           `yaml:"targetMinVY"`
	TargetMaxVY   int           `yaml:"targetMaxVY"`
	TargetMaxHP   int           `yaml:"targetMaxHP"`
	TargetSize    float64       `yaml:"targetSize"`
	TargetBody    float64       `yaml:"targetBody"`
	TargetBounce  float64       `yaml:"targetBounce"`
	TargetCullY   float64       `yaml:"targetCullY"`

	// Explosions
	ExplosionScore   int           `yaml:"explosionScore"`
	FragmentsMin     int           `yaml:"fragmentsMin"`
	FragmentsMax     int           `yaml:"fragmentsMax"`
	FragmentSpeed    int           `yaml:"fragmentSpeed"` // Each axis uniform in [-speed, speed]
	FragmentLifetime time.Duration `yaml:"fragmentLifetime"`
	FragmentSize     float64       `yaml:"fragmentSize"`
	FragmentBody     float64       `yaml:"fragmentBody"`

	// Down state
	ReviveTimeout time.Duration `yaml:"reviveTimeout"`
}

// DefaultTuning returns the stock game balance.
func DefaultTuning() Tuning {
	return Tuning{
		WorldWidth:  800,
		WorldHeight: 593,
		Gravity:     300,

		PlayerX:        400,
		PlayerY:        550,
		PlayerSpeed:    350,
		PlayerSize:     80,
		PlayerBody:     30,
		RequiredPress:  3,
		PressIncrement: 1,

		BulletSpeed:   500,
		BulletOffsetY: 30,
		BulletSize:    40,
		BulletBody:    30,

		SpawnInterval: 1500 * time.Millisecond,
		SpawnMinX:     50,
		SpawnMaxX:     750,
		TargetMinVX:   50,
		TargetMaxVX:   150,
		TargetMinVY:   100,
		TargetMaxVY:   150,
		TargetMaxHP:   3,
		TargetSize:    80,
		TargetBody:    30,
		TargetBounce:  1,
		TargetCullY:   600,

		ExplosionScore:   50,
		FragmentsMin:     4,
		FragmentsMax:     8,
		FragmentSpeed:    200,
		FragmentLifetime: 1000 * time.Millisecond,
		FragmentSize:     50,
		FragmentBody:     30,

		ReviveTimeout: 3000 * time.Millisecond,
	}
}

// LoadTuning returns DefaultTuning overlaid with the YAML file at path.
// An empty path returns the defaults.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("read tuning: %w", err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return DefaultTuning(), fmt.Errorf("parse tuning %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return DefaultTuning(), fmt.Errorf("tuning %s: %w", path, err)
	}
	return t, nil
}

// Validate rejects values the simulation cannot run with.
func (t Tuning) Validate() error {
	var errs []error
	if t.WorldWidth <= 0 || t.WorldHeight <= 0 {
		errs = append(errs, errors.New("world dimensions must be positive"))
	}
	if t.SpawnInterval <= 0 {
		errs = append(errs, errors.New("spawnInterval must be positive"))
	}
	if t.ReviveTimeout <= 0 {
		errs = append(errs, errors.New("reviveTimeout must be positive"))
	}
	if t.FragmentLifetime <= 0 {
		errs = append(errs, errors.New("fragmentLifetime must be positive"))
	}
	if t.TargetMaxHP < 1 {
		errs = append(errs, errors.New("targetMaxHP must be at least 1"))
	}
	if t.RequiredPress < 1 {
		errs = append(errs, errors.New("requiredPresses must be at least 1"))
	}
	if t.PressIncrement < 0 {
		errs = append(errs, errors.New("pressIncrement must not be negative"))
	}
	if t.SpawnMinX > t.SpawnMaxX {
		errs = append(errs, errors.New("spawnMinX exceeds spawnMaxX"))
	}
	if t.TargetMinVX > t.TargetMaxVX || t.TargetMinVY > t.TargetMaxVY {
		errs = append(errs, errors.New("target velocity range is inverted"))
	}
	if t.FragmentsMin < 0 || t.FragmentsMin > t.FragmentsMax {
		errs = append(errs, errors.New("fragment count range is invalid"))
	}
	if t.FragmentSpeed < 0 {
		errs = append(errs, errors.New("fragmentSpeed must not be negative"))
	}
	return errors.Join(errs...)
}
