package render

// Domain tags isolate independent RNG streams per spec.md §4.7:
// "Domain tags isolate streams for (subpixel jitter, area-light-disk
// sampling)."
const (
	domainJitter = uint64(1)
	domainLight  = uint64(2)
)

// pixelSeed derives a deterministic seed from (pixel_x, pixel_y,
// sample_index, domain), per spec.md §9: "Hash (pixel_x, pixel_y,
// sample_index, tag) to seed a small fast PRNG for each pixel; consume from
// that stream for jitter and light-disk samples. Do not consult wall clock
// or any thread-local state." The mixing step is splitmix64's finalizer,
// chosen for good avalanche behavior with no allocation.
func pixelSeed(px, py, sampleIndex int, domain uint64) int64 {
	h := uint64(px)*0x9E3779B97F4A7C15 + 1
	h ^= uint64(py)*0xBF58476D1CE4E5B9 + 2
	h ^= uint64(sampleIndex)*0x94D049BB133111EB + 3
	h ^= domain * 0xD6E8FEB86659FD93

	h ^= h >> 30
	h *= 0xBF58476D1CE4E5B9
	h ^= h >> 27
	h *= 0x94D049BB133111EB
	h ^= h >> 31

	return int64(h)
}
