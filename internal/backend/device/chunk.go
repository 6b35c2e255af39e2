package device

// windowSeconds is the fixed recognition window. Short spans keep the
// recognizer accurate and bound the blast radius of a failed window.
const windowSeconds = 60.0

// Chunk is one bounded recognition window of the source audio.
type Chunk struct {
	Start    float64 // absolute offset in seconds
	Duration float64 // <= windowSeconds; the final chunk takes the remainder
}

// CalculateChunks partitions a total duration into sequential 60-second
// windows. Durations sum exactly to total; the count is ceil(total/60).
func CalculateChunks(total float64) []Chunk {
	if total <= 0 {
		return nil
	}

	var chunks []Chunk
	for start := 0.0; start < total; start += windowSeconds {
		d := windowSeconds
		if start+d > total {
			d = total - start
		}
		chunks = append(chunks, Chunk{Start: start, Duration: d})
	}
	return chunks
}
