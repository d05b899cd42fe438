package hierdb_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripwire-go/twdb/internal/archive"
	"github.com/tripwire-go/twdb/internal/block"
	"github.com/tripwire-go/twdb/internal/hierdb"
	"github.com/tripwire-go/twdb/internal/recordfile"
	"github.com/tripwire-go/twdb/pkg/logger"
)

func newTestRecordFile(t *testing.T) *recordfile.File {
	t.Helper()
	bf, err := block.Open(&block.Config{
		Archive:     archive.NewMemoryArchive(),
		BlockSize:   256,
		CacheBlocks: 8,
		Logger:      logger.NewNop(),
	})
	require.NoError(t, err, "block.Open")
	rf, err := recordfile.Open(bf, logger.NewNop())
	require.NoError(t, err, "recordfile.Open")
	return rf
}

func Test_Open_On_A_Fresh_File_Creates_An_Empty_Root_Directory(t *testing.T) {
	t.Parallel()

	rf := newTestRecordFile(t)
	db, err := hierdb.Open(rf, true, '/', logger.NewNop())
	require.NoError(t, err, "hierdb.Open")

	c, err := db.RootCursor()
	require.NoError(t, err, "RootCursor")
	assert.True(t, c.AtRoot(), "AtRoot() on a fresh cursor")
	assert.True(t, c.Done(), "Done() on a brand-new empty directory")
}

func Test_CreateEntry_Then_SeekTo_Finds_It(t *testing.T) {
	t.Parallel()

	rf := newTestRecordFile(t)
	db, err := hierdb.Open(rf, true, '/', logger.NewNop())
	require.NoError(t, err, "hierdb.Open")
	c, err := db.RootCursor()
	require.NoError(t, err, "RootCursor")

	require.NoError(t, c.CreateEntry("etc"), "CreateEntry")
	name, err := c.GetName()
	require.NoError(t, err, "GetName")
	assert.Equal(t, "etc", name)

	assert.True(t, c.SeekTo("etc"), "SeekTo(etc)")
	assert.False(t, c.SeekTo("missing"), "SeekTo(missing)")
}

func Test_CreateEntry_On_An_Existing_Name_Is_A_No_Op(t *testing.T) {
	t.Parallel()

	rf := newTestRecordFile(t)
	db, err := hierdb.Open(rf, true, '/', logger.NewNop())
	require.NoError(t, err, "hierdb.Open")
	c, err := db.RootCursor()
	require.NoError(t, err, "RootCursor")

	require.NoError(t, c.CreateEntry("dup"), "CreateEntry")
	require.NoError(t, c.SetData([]byte("payload")), "SetData")
	require.NoError(t, c.CreateEntry("dup"), "CreateEntry (duplicate)")

	data, err := c.GetData()
	require.NoError(t, err, "GetData")
	assert.Equal(t, "payload", string(data), "data after duplicate CreateEntry should be unchanged")
}

func Test_SetData_Then_GetData_Round_Trips(t *testing.T) {
	t.Parallel()

	rf := newTestRecordFile(t)
	db, err := hierdb.Open(rf, true, '/', logger.NewNop())
	require.NoError(t, err, "hierdb.Open")
	c, err := db.RootCursor()
	require.NoError(t, err, "RootCursor")

	require.NoError(t, c.CreateEntry("file.txt"), "CreateEntry")
	require.NoError(t, c.SetData([]byte("some file contents")), "SetData")
	data, err := c.GetData()
	require.NoError(t, err, "GetData")
	assert.Equal(t, "some file contents", string(data))

	require.NoError(t, c.RemoveData(), "RemoveData")
	data, err = c.GetData()
	require.NoError(t, err, "GetData after RemoveData")
	assert.Nil(t, data, "GetData after RemoveData")
}

func Test_CreateChildArray_Then_Descend_And_Ascend(t *testing.T) {
	t.Parallel()

	rf := newTestRecordFile(t)
	db, err := hierdb.Open(rf, true, '/', logger.NewNop())
	require.NoError(t, err, "hierdb.Open")
	c, err := db.RootCursor()
	require.NoError(t, err, "RootCursor")

	require.NoError(t, c.CreateEntry("home"), "CreateEntry")
	require.NoError(t, c.CreateChildArray(), "CreateChildArray")
	require.NoError(t, c.Descend(), "Descend")
	assert.False(t, c.AtRoot(), "AtRoot() after Descend")
	assert.Equal(t, "/home", c.GetCwd())
	assert.True(t, c.Done(), "Done() in a freshly created child directory")

	require.NoError(t, c.CreateEntry("user"), "CreateEntry in child")

	require.NoError(t, c.Ascend(), "Ascend")
	assert.True(t, c.AtRoot(), "AtRoot() after Ascend back to root")
}

func Test_DeleteEntry_Rejects_An_Entry_With_A_Child(t *testing.T) {
	t.Parallel()

	rf := newTestRecordFile(t)
	db, err := hierdb.Open(rf, true, '/', logger.NewNop())
	require.NoError(t, err, "hierdb.Open")
	c, err := db.RootCursor()
	require.NoError(t, err, "RootCursor")

	require.NoError(t, c.CreateEntry("dir"), "CreateEntry")
	require.NoError(t, c.CreateChildArray(), "CreateChildArray")

	assert.Error(t, c.DeleteEntry(), "DeleteEntry on an entry with a child")
}

func Test_DeleteEntry_Removes_A_Childless_Entry(t *testing.T) {
	t.Parallel()

	rf := newTestRecordFile(t)
	db, err := hierdb.Open(rf, true, '/', logger.NewNop())
	require.NoError(t, err, "hierdb.Open")
	c, err := db.RootCursor()
	require.NoError(t, err, "RootCursor")

	require.NoError(t, c.CreateEntry("leaf"), "CreateEntry")
	require.NoError(t, c.DeleteEntry(), "DeleteEntry")
	require.NoError(t, c.SeekToRoot(), "SeekToRoot")
	assert.False(t, c.SeekTo("leaf"), "SeekTo(leaf) after DeleteEntry")
}

func Test_DeleteChildArray_Rejects_A_Non_Empty_Child(t *testing.T) {
	t.Parallel()

	rf := newTestRecordFile(t)
	db, err := hierdb.Open(rf, true, '/', logger.NewNop())
	require.NoError(t, err, "hierdb.Open")
	c, err := db.RootCursor()
	require.NoError(t, err, "RootCursor")

	require.NoError(t, c.CreateEntry("dir"), "CreateEntry")
	require.NoError(t, c.CreateChildArray(), "CreateChildArray")
	require.NoError(t, c.Descend(), "Descend")
	require.NoError(t, c.CreateEntry("occupant"), "CreateEntry in child")
	require.NoError(t, c.Ascend(), "Ascend")

	assert.Error(t, c.DeleteChildArray(), "DeleteChildArray on a non-empty child")
}

func Test_Case_Insensitive_Database_Treats_Differently_Cased_Names_As_Equal(t *testing.T) {
	t.Parallel()

	rf := newTestRecordFile(t)
	db, err := hierdb.Open(rf, false, '/', logger.NewNop())
	require.NoError(t, err, "hierdb.Open")
	c, err := db.RootCursor()
	require.NoError(t, err, "RootCursor")

	require.NoError(t, c.CreateEntry("README"), "CreateEntry")
	assert.True(t, c.SeekTo("readme"), "case-insensitive SeekTo(readme) for README")
}

func Test_Reopen_Preserves_The_Stored_Configuration(t *testing.T) {
	t.Parallel()

	rf := newTestRecordFile(t)
	first, err := hierdb.Open(rf, false, ':', logger.NewNop())
	require.NoError(t, err, "hierdb.Open (create)")
	c, err := first.RootCursor()
	require.NoError(t, err, "RootCursor")
	require.NoError(t, c.CreateEntry("persisted"), "CreateEntry")

	// Reopening passes different args; the persisted root node's own
	// configuration must win rather than whatever the caller passes this time.
	second, err := hierdb.Open(rf, true, '/', logger.NewNop())
	require.NoError(t, err, "hierdb.Open (reopen)")
	c2, err := second.RootCursor()
	require.NoError(t, err, "RootCursor (reopen)")
	assert.Equal(t, ":", c2.GetCwd(), "delimiter should persist across reopen")
	assert.True(t, c2.SeekTo("PERSISTED"), "case-sensitivity should persist across reopen")
}
