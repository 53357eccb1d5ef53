package cache

import (
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/LordGrimmauld/rmenu/internal/config"
	"github.com/LordGrimmauld/rmenu/pkg/plugin"
)

func testEntries() []plugin.Entry {
	comment := "web browser"
	return []plugin.Entry{
		plugin.NewEntry("Firefox", "firefox", &comment),
		plugin.NewEntry("Files", "nautilus", nil),
	}
}

func backdate(t *testing.T, path string, age time.Duration) {
	t.Helper()
	when := time.Now().Add(-age)
	require.NoError(t, os.Chtimes(path, when, when))
}

func TestStoreReadWrite(t *testing.T) {
	store := NewStore(t.TempDir())
	never := config.CacheSetting{Mode: config.CacheNever}
	entries := testEntries()

	require.NoError(t, store.Write("drun", never, entries))

	got, err := store.Read("drun", never)
	require.NoError(t, err)
	assert.Equal(t, entries, got)

	t.Run("MissingArtifact", func(t *testing.T) {
		_, err := store.Read("unknown", never)
		assert.ErrorIs(t, err, ErrNotAvailable)
	})

	t.Run("NoTempResidue", func(t *testing.T) {
		dirEntries, err := os.ReadDir(store.Dir())
		require.NoError(t, err)
		for _, dirEntry := range dirEntries {
			assert.NotContains(t, dirEntry.Name(), ".tmp")
		}
	})

	t.Run("EmptyEntryList", func(t *testing.T) {
		require.NoError(t, store.Write("empty", never, []plugin.Entry{}))
		got, err := store.Read("empty", never)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("Overwrite", func(t *testing.T) {
		replacement := []plugin.Entry{plugin.NewEntry("Terminal", "alacritty", nil)}
		require.NoError(t, store.Write("drun", never, replacement))
		got, err := store.Read("drun", never)
		require.NoError(t, err)
		assert.Equal(t, replacement, got)
	})

	t.Run("PathSanitized", func(t *testing.T) {
		assert.Equal(t, "web_search.cache", filepath.Base(store.Path("web/search")))
		assert.Equal(t, "a_b_c.cache", filepath.Base(store.Path(`a\b:c`)))
	})
}

func TestStorePolicies(t *testing.T) {
	never := config.CacheSetting{Mode: config.CacheNever}
	entries := testEntries()

	newStoreWithArtifact := func(t *testing.T, name string) *Store {
		t.Helper()
		store := NewStore(t.TempDir())
		require.NoError(t, store.Write(name, never, entries))
		return store
	}

	t.Run("DisabledReadsInvalid", func(t *testing.T) {
		store := newStoreWithArtifact(t, "drun")
		_, err := store.Read("drun", config.CacheSetting{Mode: config.CacheDisabled})
		assert.ErrorIs(t, err, ErrInvalidCache)
	})

	t.Run("MissingWinsOverDisabled", func(t *testing.T) {
		store := NewStore(t.TempDir())
		_, err := store.Read("drun", config.CacheSetting{Mode: config.CacheDisabled})
		assert.ErrorIs(t, err, ErrNotAvailable)
	})

	t.Run("DisabledWriteIsNoop", func(t *testing.T) {
		store := NewStore(t.TempDir())
		require.NoError(t, store.Write("drun", config.CacheSetting{Mode: config.CacheDisabled}, entries))
		_, ok := store.Stat("drun")
		assert.False(t, ok)
	})

	t.Run("NeverOutlivesAnyAge", func(t *testing.T) {
		store := newStoreWithArtifact(t, "drun")
		backdate(t, store.Path("drun"), 2400*time.Hour)
		got, err := store.Read("drun", never)
		require.NoError(t, err)
		assert.Equal(t, entries, got)
	})

	t.Run("AfterSecondsFresh", func(t *testing.T) {
		store := newStoreWithArtifact(t, "drun")
		_, err := store.Read("drun", config.CacheSetting{Mode: config.CacheAfterSeconds, Seconds: 3600})
		assert.NoError(t, err)
	})

	t.Run("AfterSecondsExpired", func(t *testing.T) {
		store := newStoreWithArtifact(t, "drun")
		backdate(t, store.Path("drun"), 2*time.Hour)
		_, err := store.Read("drun", config.CacheSetting{Mode: config.CacheAfterSeconds, Seconds: 3600})
		assert.ErrorIs(t, err, ErrCacheExpired)
	})

	t.Run("AfterSecondsBoundary", func(t *testing.T) {
		store := newStoreWithArtifact(t, "drun")
		info, ok := store.Stat("drun")
		require.True(t, ok)

		// An artifact exactly ttl old is already stale.
		store.now = func() time.Time { return info.Modified.Add(10 * time.Second) }
		_, err := store.Read("drun", config.CacheSetting{Mode: config.CacheAfterSeconds, Seconds: 10})
		assert.ErrorIs(t, err, ErrCacheExpired)

		store.now = func() time.Time { return info.Modified.Add(9 * time.Second) }
		_, err = store.Read("drun", config.CacheSetting{Mode: config.CacheAfterSeconds, Seconds: 10})
		assert.NoError(t, err)
	})

	t.Run("AfterSecondsFutureModTime", func(t *testing.T) {
		store := newStoreWithArtifact(t, "drun")
		info, ok := store.Stat("drun")
		require.True(t, ok)

		// Clock skew puts the artifact in the future; age clamps to
		// zero instead of going negative.
		store.now = func() time.Time { return info.Modified.Add(-time.Hour) }
		_, err := store.Read("drun", config.CacheSetting{Mode: config.CacheAfterSeconds, Seconds: 1})
		assert.NoError(t, err)
	})

	t.Run("AfterZeroSecondsAlwaysExpired", func(t *testing.T) {
		store := newStoreWithArtifact(t, "drun")
		_, err := store.Read("drun", config.CacheSetting{Mode: config.CacheAfterSeconds, Seconds: 0})
		assert.ErrorIs(t, err, ErrCacheExpired)
	})

	t.Run("OnLoginFresh", func(t *testing.T) {
		store := newStoreWithArtifact(t, "drun")
		info, _ := store.Stat("drun")
		store.lastLogin = func() (time.Time, error) { return info.Modified.Add(-time.Hour), nil }
		_, err := store.Read("drun", config.CacheSetting{Mode: config.CacheOnLogin})
		assert.NoError(t, err)
	})

	t.Run("OnLoginExpired", func(t *testing.T) {
		store := newStoreWithArtifact(t, "drun")
		info, _ := store.Stat("drun")
		store.lastLogin = func() (time.Time, error) { return info.Modified.Add(time.Hour), nil }
		_, err := store.Read("drun", config.CacheSetting{Mode: config.CacheOnLogin})
		assert.ErrorIs(t, err, ErrCacheExpired)
	})

	t.Run("OnLoginExactBoundary", func(t *testing.T) {
		store := newStoreWithArtifact(t, "drun")
		info, _ := store.Stat("drun")
		store.lastLogin = func() (time.Time, error) { return info.Modified, nil }
		_, err := store.Read("drun", config.CacheSetting{Mode: config.CacheOnLogin})
		assert.ErrorIs(t, err, ErrCacheExpired)
	})

	t.Run("OnLoginUnknownStaysFresh", func(t *testing.T) {
		store := newStoreWithArtifact(t, "drun")
		store.lastLogin = func() (time.Time, error) { return time.Time{}, errors.New("probe failed") }
		_, err := store.Read("drun", config.CacheSetting{Mode: config.CacheOnLogin})
		assert.NoError(t, err)
	})
}

func TestArtifactCompatibility(t *testing.T) {
	never := config.CacheSetting{Mode: config.CacheNever}
	entries := testEntries()

	writeRaw := func(t *testing.T, store *Store, name string, data []byte) {
		t.Helper()
		require.NoError(t, os.MkdirAll(store.Dir(), 0o750))
		require.NoError(t, os.WriteFile(store.Path(name), data, 0o600))
	}

	t.Run("CorruptArtifact", func(t *testing.T) {
		store := NewStore(t.TempDir())
		writeRaw(t, store, "drun", []byte("not msgpack at all"))

		_, err := store.Read("drun", never)
		var encErr *EncodingError
		assert.ErrorAs(t, err, &encErr)
	})

	t.Run("UnknownFormat", func(t *testing.T) {
		store := NewStore(t.TempDir())
		data, err := msgpack.Marshal(artifact{Format: 99, Version: "0.1.0", Entries: entries})
		require.NoError(t, err)
		writeRaw(t, store, "drun", data)

		_, err = store.Read("drun", never)
		var encErr *EncodingError
		require.ErrorAs(t, err, &encErr)
		assert.Contains(t, encErr.Error(), "format")
	})

	t.Run("MajorVersionMismatch", func(t *testing.T) {
		store := NewStore(t.TempDir())
		data, err := msgpack.Marshal(artifact{Format: artifactFormat, Version: "99.0.0", Entries: entries})
		require.NoError(t, err)
		writeRaw(t, store, "drun", data)

		_, err = store.Read("drun", never)
		var encErr *EncodingError
		require.ErrorAs(t, err, &encErr)
		assert.Contains(t, encErr.Error(), "incompatible")
	})

	t.Run("UnparseableVersionTolerated", func(t *testing.T) {
		store := NewStore(t.TempDir())
		data, err := msgpack.Marshal(artifact{Format: artifactFormat, Version: "homegrown", Entries: entries})
		require.NoError(t, err)
		writeRaw(t, store, "drun", data)

		got, err := store.Read("drun", never)
		require.NoError(t, err)
		assert.Equal(t, entries, got)
	})

	t.Run("RoundTripKeepsOptionalFields", func(t *testing.T) {
		store := NewStore(t.TempDir())
		icon := "firefox.svg"
		entry := plugin.NewEntry("Firefox", "firefox", nil)
		entry.Icon = &icon

		require.NoError(t, store.Write("drun", never, []plugin.Entry{entry}))
		got, err := store.Read("drun", never)
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.NotNil(t, got[0].Icon)
		assert.Equal(t, icon, *got[0].Icon)
		assert.Nil(t, got[0].Comment)
	})
}

func TestStoreMaintenance(t *testing.T) {
	never := config.CacheSetting{Mode: config.CacheNever}
	entries := testEntries()

	t.Run("Clear", func(t *testing.T) {
		store := NewStore(t.TempDir())
		require.NoError(t, store.Write("drun", never, entries))
		require.NoError(t, store.Clear("drun"))

		_, err := store.Read("drun", never)
		assert.ErrorIs(t, err, ErrNotAvailable)

		// Clearing again is fine.
		assert.NoError(t, store.Clear("drun"))
	})

	t.Run("ClearAll", func(t *testing.T) {
		store := NewStore(t.TempDir())
		require.NoError(t, store.Write("drun", never, entries))
		require.NoError(t, store.Write("run", never, entries))
		require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), "notes.txt"), []byte("keep"), 0o600))

		require.NoError(t, store.ClearAll())

		infos, err := store.List()
		require.NoError(t, err)
		assert.Empty(t, infos)
		assert.FileExists(t, filepath.Join(store.Dir(), "notes.txt"))
	})

	t.Run("ClearAllMissingDir", func(t *testing.T) {
		store := NewStore(filepath.Join(t.TempDir(), "nothing-here"))
		assert.NoError(t, store.ClearAll())
	})

	t.Run("List", func(t *testing.T) {
		store := NewStore(t.TempDir())
		require.NoError(t, store.Write("run", never, entries))
		require.NoError(t, store.Write("drun", never, entries))

		infos, err := store.List()
		require.NoError(t, err)
		require.Len(t, infos, 2)
		assert.Equal(t, "drun", infos[0].Name)
		assert.Equal(t, "run", infos[1].Name)
		assert.Greater(t, infos[0].Size, int64(0))
	})

	t.Run("ListMissingDir", func(t *testing.T) {
		store := NewStore(filepath.Join(t.TempDir(), "nothing-here"))
		infos, err := store.List()
		require.NoError(t, err)
		assert.Empty(t, infos)
	})

	t.Run("Stat", func(t *testing.T) {
		store := NewStore(t.TempDir())
		require.NoError(t, store.Write("drun", never, entries))

		info, ok := store.Stat("drun")
		require.True(t, ok)
		assert.Equal(t, "drun", info.Name)
		assert.Equal(t, store.Path("drun"), info.Path)
		assert.WithinDuration(t, time.Now(), info.Modified, time.Minute)

		_, ok = store.Stat("unknown")
		assert.False(t, ok)
	})
}

func TestReadLastLogin(t *testing.T) {
	writeFixture := func(t *testing.T, records map[int]int64) string {
		t.Helper()
		maxUID := 0
		for uid := range records {
			if uid > maxUID {
				maxUID = uid
			}
		}
		buf := make([]byte, (maxUID+1)*lastlogRecordSize)
		for uid, epoch := range records {
			binary.NativeEndian.PutUint32(buf[uid*lastlogRecordSize:], uint32(epoch))
		}
		path := filepath.Join(t.TempDir(), "lastlog")
		require.NoError(t, os.WriteFile(path, buf, 0o600))
		return path
	}

	t.Run("RecordedLogin", func(t *testing.T) {
		epoch := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC).Unix()
		path := writeFixture(t, map[int]int64{0: 1, 2: epoch})

		got, err := readLastLogin(path, 2)
		require.NoError(t, err)
		assert.Equal(t, time.Unix(epoch, 0), got)
	})

	t.Run("NeverLoggedIn", func(t *testing.T) {
		path := writeFixture(t, map[int]int64{3: 42})

		_, err := readLastLogin(path, 1)
		assert.ErrorIs(t, err, errNoLoginRecord)
	})

	t.Run("MissingDatabase", func(t *testing.T) {
		_, err := readLastLogin(filepath.Join(t.TempDir(), "lastlog"), 0)
		assert.Error(t, err)
	})

	t.Run("RecordPastEnd", func(t *testing.T) {
		path := writeFixture(t, map[int]int64{0: 42})

		_, err := readLastLogin(path, 50)
		assert.Error(t, err)
	})
}
