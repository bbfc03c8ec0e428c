package filter

import (
	"math"

	"github.com/gogpu/fx/internal/cache"
)

// GaussianKernel returns a normalized 1D Gaussian kernel using radius as
// sigma. The kernel covers three standard deviations on each side.
//
// For radius <= 0 it returns the identity kernel [1].
func GaussianKernel(radius float64) []float32 {
	if radius <= 0 {
		return []float32{1}
	}

	half := kernelHalf(radius)
	kernel := make([]float32, half*2+1)
	twoSigmaSq := 2 * radius * radius

	var sum float64
	for i := range kernel {
		x := float64(i - half)
		v := math.Exp(-(x * x) / twoSigmaSq)
		kernel[i] = float32(v)
		sum += v
	}

	inv := float32(1 / sum)
	for i := range kernel {
		kernel[i] *= inv
	}
	return kernel
}

// kernelHalf returns the number of taps on each side of the center.
func kernelHalf(radius float64) int {
	if radius <= 0 {
		return 0
	}
	return int(math.Ceil(radius * 3))
}

// kernelCache memoizes Gaussian kernels by radius quantized to 0.01.
type kernelCache struct {
	kernels *cache.Cache[int, []float32]
}

var defaultKernelCache = newKernelCache(64)

func newKernelCache(maxLen int) *kernelCache {
	return &kernelCache{kernels: cache.New[int, []float32](maxLen)}
}

func (c *kernelCache) get(radius float64) []float32 {
	key := int(radius * 100)
	return c.kernels.GetOrCreate(key, func() []float32 {
		return GaussianKernel(radius)
	})
}

// CachedGaussianKernel is GaussianKernel backed by a shared cache. The
// returned slice must not be modified.
func CachedGaussianKernel(radius float64) []float32 {
	return defaultKernelCache.get(radius)
}
