package model

// FFProbeOutput is the subset of `ffprobe -print_format json -show_format
// -show_streams` we read.
type FFProbeOutput struct {
	Streams []struct {
		CodecType  string `json:"codec_type"`
		CodecName  string `json:"codec_name"`
		SampleRate int    `json:"sample_rate,string"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// HasAudio reports whether the probed resource carries at least one audio stream.
func (o FFProbeOutput) HasAudio() bool {
	for _, stream := range o.Streams {
		if stream.CodecType == "audio" {
			return true
		}
	}
	return false
}
