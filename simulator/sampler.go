// backend/simulator/sampler.go
package simulator

import (
	"math"

	"gonum.org/v1/gonum/mathext/prng"
)

// Sampler draws Poisson and normal variates from a seeded MT19937 stream.
// The algorithms (53-bit doubles, PTRS Poisson, polar Box-Muller with a cached
// second value) are the ones numpy's legacy RandomState uses, so a series
// generated here matches np.random.seed(seed) followed by the same draws.
// A Sampler is not safe for concurrent use.
type Sampler struct {
	src      *prng.MT19937
	hasGauss bool
	gauss    float64
}

// NewSampler returns a sampler seeded with init_genrand(seed).
func NewSampler(seed uint32) *Sampler {
	src := prng.NewMT19937()
	src.Seed(uint64(seed))
	return &Sampler{src: src}
}

// Float64 returns a uniform value in [0, 1) with 53 bits of precision.
func (s *Sampler) Float64() float64 {
	a := s.src.Uint32() >> 5
	b := s.src.Uint32() >> 6
	return (float64(a)*67108864.0 + float64(b)) / 9007199254740992.0
}

// Poisson draws n samples with mean lam.
func (s *Sampler) Poisson(lam float64, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = s.poisson(lam)
	}
	return out
}

// Normal draws n samples with the given mean and standard deviation.
func (s *Sampler) Normal(mean, stddev float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = mean + stddev*s.standardNormal()
	}
	return out
}

func (s *Sampler) poisson(lam float64) int {
	switch {
	case lam >= 10:
		return s.poissonPTRS(lam)
	case lam == 0:
		return 0
	default:
		return s.poissonMult(lam)
	}
}

// poissonMult counts uniforms until their product drops below exp(-lam).
func (s *Sampler) poissonMult(lam float64) int {
	enlam := math.Exp(-lam)
	k := 0
	prod := 1.0
	for {
		prod *= s.Float64()
		if prod <= enlam {
			return k
		}
		k++
	}
}

// poissonPTRS is Hörmann's transformed rejection with squeeze.
func (s *Sampler) poissonPTRS(lam float64) int {
	slam := math.Sqrt(lam)
	loglam := math.Log(lam)
	b := 0.931 + 2.53*slam
	a := -0.059 + 0.02483*b
	invalpha := 1.1239 + 1.1328/(b-3.4)
	vr := 0.9277 - 3.6224/(b-2)

	for {
		u := s.Float64() - 0.5
		v := s.Float64()
		us := 0.5 - math.Abs(u)
		k := int(math.Floor((2*a/us+b)*u + lam + 0.43))
		if us >= 0.07 && v <= vr {
			return k
		}
		if k < 0 || (us < 0.013 && v > us) {
			continue
		}
		lhs := math.Log(v) + math.Log(invalpha) - math.Log(a/(us*us)+b)
		rhs := -lam + float64(k)*loglam - logGamma(float64(k+1))
		if lhs <= rhs {
			return k
		}
	}
}

func (s *Sampler) standardNormal() float64 {
	if s.hasGauss {
		s.hasGauss = false
		return s.gauss
	}
	var x1, x2, r2 float64
	for {
		x1 = 2*s.Float64() - 1
		x2 = 2*s.Float64() - 1
		r2 = x1*x1 + x2*x2
		if r2 < 1 && r2 != 0 {
			break
		}
	}
	f := math.Sqrt(-2 * math.Log(r2) / r2)
	s.gauss = f * x1
	s.hasGauss = true
	return f * x2
}

var logGammaCoeffs = [10]float64{
	8.333333333333333e-02, -2.777777777777778e-03,
	7.936507936507937e-04, -5.952380952380952e-04,
	8.417508417508418e-04, -1.917526917526918e-03,
	6.410256410256410e-03, -2.955065359477124e-02,
	1.796443723688307e-01, -1.39243221690590e+00,
}

// logGamma is the Stirling-series log-gamma used by the PTRS acceptance test.
// It must stay bit-identical to the reference series; math.Lgamma is not.
func logGamma(x float64) float64 {
	if x == 1 || x == 2 {
		return 0
	}
	n := 0
	if x < 7 {
		n = int(7 - x)
	}
	x0 := x + float64(n)
	x2 := 1.0 / (x0 * x0)
	gl0 := logGammaCoeffs[9]
	for k := 8; k >= 0; k-- {
		gl0 *= x2
		gl0 += logGammaCoeffs[k]
	}
	gl := gl0/x0 + 0.5*math.Log(2*math.Pi) + (x0-0.5)*math.Log(x0) - x0
	if x < 7 {
		for k := 1; k <= n; k++ {
			gl -= math.Log(x0 - 1)
			x0--
		}
	}
	return gl
}
