package radio

// AzimuthParams tune the actual-azimuth estimator.
type AzimuthParams struct {
	// MinPoints is the minimum number of in-range samples required for an
	// estimate; below it the sector reports the insufficient-data sentinel.
	MinPoints int `yaml:"min_points" json:"min_points"`
	// MaxDistance (meters) gates samples around the sector location;
	// points farther out are clutter, not the lobe of interest.
	MaxDistance float64 `yaml:"max_distance" json:"max_distance"`
	// ClusterThreshold is the sample count above which the estimator runs
	// density clustering to isolate the dominant propagation lobe.
	ClusterThreshold int `yaml:"cluster_threshold" json:"cluster_threshold"`
	// ClusterEps is the DBSCAN radius in degrees.
	ClusterEps float64 `yaml:"cluster_eps" json:"cluster_eps"`
	// ClusterMinSamples is the DBSCAN core-point threshold.
	ClusterMinSamples int `yaml:"cluster_min_samples" json:"cluster_min_samples"`
}

// SwapParams tune the sector-swap detector.
type SwapParams struct {
	// Beamwidth (degrees) sets the directional test cone; a sample counts
	// toward a candidate when its bearing from the candidate falls within
	// Beamwidth/2 of the candidate's planned azimuth.
	Beamwidth float64 `yaml:"beamwidth" json:"beamwidth"`
	// MinSamples is the attributed-sample floor for swap evaluation.
	MinSamples int `yaml:"min_samples" json:"min_samples"`
}

// NeighborParams tune neighbor discovery.
type NeighborParams struct {
	SearchRadius float64 `yaml:"search_radius" json:"search_radius"` // meters
	MaxNeighbors int     `yaml:"max_neighbors" json:"max_neighbors"` // per serving sector
}

// Params collects every caller-adjustable engine knob.
type Params struct {
	Azimuth  AzimuthParams  `yaml:"azimuth" json:"azimuth"`
	Swap     SwapParams     `yaml:"swap" json:"swap"`
	Neighbor NeighborParams `yaml:"neighbor" json:"neighbor"`
	// Workers caps analysis parallelism; <=0 means GOMAXPROCS.
	Workers int `yaml:"workers" json:"workers"`
}

// DefaultParams returns the production defaults.
func DefaultParams() Params {
	return Params{
		Azimuth: AzimuthParams{
			MinPoints:         30,
			MaxDistance:       2000,
			ClusterThreshold:  100,
			ClusterEps:        0.0015,
			ClusterMinSamples: 10,
		},
		Swap: SwapParams{
			Beamwidth:  65,
			MinSamples: 50,
		},
		Neighbor: NeighborParams{
			SearchRadius: 5000,
			MaxNeighbors: 32,
		},
	}
}
