// Package cache provides a small generic LRU cache for memoizing values
// that are expensive to compute and cheap to keep, such as filter kernels.
//
//	c := cache.New[int, []float32](64)
//	k := c.GetOrCreate(key, func() []float32 { return build(key) })
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
