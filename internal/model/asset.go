package model

import "fmt"

// Asset identifies a downloadable local-model variant.
type Asset struct {
	Name        string // variant name, e.g. "base"
	FileName    string // on-disk file name
	URL         string // remote source
	ApproxBytes int64  // approximate download size, used when the server omits a length
}

// Model files are fetched from the public whisper.cpp model repository.
const urlTemplate = "https://huggingface.co/ggerganov/whisper.cpp/resolve/main/ggml-%s.bin"

var catalog = []Asset{
	{Name: "tiny", ApproxBytes: 78 << 20},
	{Name: "base", ApproxBytes: 148 << 20},
	{Name: "small", ApproxBytes: 488 << 20},
	{Name: "medium", ApproxBytes: 1533 << 20},
	{Name: "large-v3", ApproxBytes: 3095 << 20},
}

func init() {
	for i := range catalog {
		catalog[i].FileName = fmt.Sprintf("ggml-%s.bin", catalog[i].Name)
		catalog[i].URL = fmt.Sprintf(urlTemplate, catalog[i].Name)
	}
}

// Assets lists the known model variants, smallest first.
func Assets() []Asset {
	out := make([]Asset, len(catalog))
	copy(out, catalog)
	return out
}

// AssetByName looks up a variant by name.
func AssetByName(name string) (Asset, bool) {
	for _, a := range catalog {
		if a.Name == name {
			return a, true
		}
	}
	return Asset{}, false
}
