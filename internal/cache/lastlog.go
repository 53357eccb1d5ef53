package cache

import (
	"encoding/binary"
	"errors"
	"os"
	"time"
)

// lastlog stores one fixed-size record per UID: a 32-bit epoch
// timestamp followed by a 32-byte terminal line and a 256-byte host.
const lastlogRecordSize = 4 + 32 + 256

var errNoLoginRecord = errors.New("no login recorded")

// readLastLogin extracts the login timestamp for uid from a lastlog
// database at path. A zeroed timestamp means the UID never logged in.
func readLastLogin(path string, uid int) (time.Time, error) {
	file, err := os.Open(path)
	if err != nil {
		return time.Time{}, err
	}
	defer file.Close()

	stamp := make([]byte, 4)
	if _, err := file.ReadAt(stamp, int64(uid)*lastlogRecordSize); err != nil {
		return time.Time{}, err
	}

	epoch := int64(int32(binary.NativeEndian.Uint32(stamp)))
	if epoch == 0 {
		return time.Time{}, errNoLoginRecord
	}

	return time.Unix(epoch, 0), nil
}
