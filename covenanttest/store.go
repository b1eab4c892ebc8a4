package covenanttest

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/covenant/store/iavl"
)

// CommitKVStore returns a store instance that is using a filesystem backend
// engine to store the data.
// This implementation should be used instead of MemStore when you want the
// exact same storage implementation as the production instance is using.
func CommitKVStore(t testing.TB) (db iavl.CommitStore, cleanup func()) {
	dbpath, err := ioutil.TempDir("", "covenanttest-")
	if err != nil {
		t.Fatalf("cannot create a temporary directory: %s", err)
	}

	db = iavl.NewCommitStore(dbpath, "db")
	if err := db.LoadLatestVersion(); err != nil {
		t.Fatalf("cannot load store: %s", err)
	}
	return db, func() {
		db.Close()
		os.RemoveAll(dbpath)
	}
}
