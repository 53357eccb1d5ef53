package cache

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/LordGrimmauld/rmenu/pkg/plugin"
	"github.com/LordGrimmauld/rmenu/pkg/version"
)

// artifactFormat is bumped whenever the envelope layout changes.
const artifactFormat = 1

// artifact is the on-disk envelope around a cached entry list. The
// writer's version travels with the entries so a newer build never
// trusts entries laid out by an incompatible one.
type artifact struct {
	Format  int            `msgpack:"format"`
	Version string         `msgpack:"version"`
	Entries []plugin.Entry `msgpack:"entries"`
}

func encodeArtifact(entries []plugin.Entry) ([]byte, error) {
	data, err := msgpack.Marshal(artifact{
		Format:  artifactFormat,
		Version: version.GetVersion(),
		Entries: entries,
	})
	if err != nil {
		return nil, &EncodingError{Err: err}
	}
	return data, nil
}

func decodeArtifact(data []byte) ([]plugin.Entry, error) {
	var art artifact
	if err := msgpack.Unmarshal(data, &art); err != nil {
		return nil, &EncodingError{Err: err}
	}

	if art.Format != artifactFormat {
		return nil, &EncodingError{Err: fmt.Errorf("unsupported artifact format %d", art.Format)}
	}

	if err := checkWriterVersion(art.Version); err != nil {
		return nil, &EncodingError{Err: err}
	}

	return art.Entries, nil
}

// checkWriterVersion rejects artifacts written under a different major
// version. Versions that fail to parse are not blocking; a definite
// major mismatch is.
func checkWriterVersion(written string) error {
	current, err := semver.NewVersion(version.GetVersion())
	if err != nil {
		return nil
	}
	writer, err := semver.NewVersion(written)
	if err != nil {
		return nil
	}

	if writer.Major() != current.Major() {
		return fmt.Errorf("artifact written by incompatible version %s, running %s", written, version.GetVersion())
	}

	return nil
}
