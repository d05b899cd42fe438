package errors_test

import (
	"testing"

	"github.com/tripwire-go/twdb/pkg/errors"
)

func Test_NewBadAddressError_Populates_Address_Fields(t *testing.T) {
	t.Parallel()

	err := errors.NewBadAddressError("GetDataForReading", 7, 3)
	if err.Operation() != "GetDataForReading" {
		t.Errorf("Operation() = %q, want %q", err.Operation(), "GetDataForReading")
	}
	if err.BlockNum() != 7 {
		t.Errorf("BlockNum() = %d, want 7", err.BlockNum())
	}
	if err.Slot() != 3 {
		t.Errorf("Slot() = %d, want 3", err.Slot())
	}
	if errors.GetErrorCode(err) != errors.ErrorCodeBadAddress {
		t.Errorf("GetErrorCode() = %v, want ErrorCodeBadAddress", errors.GetErrorCode(err))
	}
}

func Test_NewOutOfSpaceError_Populates_Operation_And_Size(t *testing.T) {
	t.Parallel()

	err := errors.NewOutOfSpaceError("AddItem", 9000)
	if err.Operation() != "AddItem" {
		t.Errorf("Operation() = %q, want %q", err.Operation(), "AddItem")
	}
	if err.Size() != 9000 {
		t.Errorf("Size() = %d, want 9000", err.Size())
	}
	if errors.GetErrorCode(err) != errors.ErrorCodeOutOfSpace {
		t.Errorf("GetErrorCode() = %v, want ErrorCodeOutOfSpace", errors.GetErrorCode(err))
	}
}

func Test_RecordError_Fluent_Chain_Preserves_Its_Own_Type(t *testing.T) {
	t.Parallel()

	err := errors.NewRecordError(nil, errors.ErrorCodeBadAddress, "bad").
		WithBlockNum(1).
		WithSlot(2).
		WithOperation("DeleteItem").
		WithSize(64).
		WithDetail("extra", "info").
		WithMessage("updated message")

	if err.BlockNum() != 1 || err.Slot() != 2 || err.Operation() != "DeleteItem" || err.Size() != 64 {
		t.Errorf("chained fields = (%d, %d, %q, %d), want (1, 2, DeleteItem, 64)",
			err.BlockNum(), err.Slot(), err.Operation(), err.Size())
	}
	if errors.GetErrorDetails(err)["extra"] != "info" {
		t.Errorf("details[extra] = %v, want info", errors.GetErrorDetails(err)["extra"])
	}
}

func Test_NewHasChildrenError_Populates_Path_And_Name(t *testing.T) {
	t.Parallel()

	err := errors.NewHasChildrenError("/etc", "passwd")
	if err.Path() != "/etc" {
		t.Errorf("Path() = %q, want %q", err.Path(), "/etc")
	}
	if err.Name() != "passwd" {
		t.Errorf("Name() = %q, want %q", err.Name(), "passwd")
	}
	if err.Operation() != "DeleteEntry" {
		t.Errorf("Operation() = %q, want %q", err.Operation(), "DeleteEntry")
	}
	if errors.GetErrorCode(err) != errors.ErrorCodeHasChildren {
		t.Errorf("GetErrorCode() = %v, want ErrorCodeHasChildren", errors.GetErrorCode(err))
	}
}

func Test_NewNotEmptyError_Populates_Path_And_Operation(t *testing.T) {
	t.Parallel()

	err := errors.NewNotEmptyError("/etc")
	if err.Path() != "/etc" {
		t.Errorf("Path() = %q, want %q", err.Path(), "/etc")
	}
	if err.Operation() != "DeleteChildArray" {
		t.Errorf("Operation() = %q, want %q", err.Operation(), "DeleteChildArray")
	}
	if errors.GetErrorCode(err) != errors.ErrorCodeNotEmpty {
		t.Errorf("GetErrorCode() = %v, want ErrorCodeNotEmpty", errors.GetErrorCode(err))
	}
}

func Test_ArchiveError_Fluent_Chain_Preserves_Its_Own_Type(t *testing.T) {
	t.Parallel()

	err := errors.NewArchiveError(nil, errors.ErrorCodeArchiveIO, "bad read").
		WithBlockNum(4).
		WithOffset(128).
		WithPath("/var/lib/twdb/database.twd").
		WithDetail("want", 16)

	if err.BlockNum() != 4 {
		t.Errorf("BlockNum() = %d, want 4", err.BlockNum())
	}
	if err.Offset() != 128 {
		t.Errorf("Offset() = %d, want 128", err.Offset())
	}
	if err.Path() != "/var/lib/twdb/database.twd" {
		t.Errorf("Path() = %q, want %q", err.Path(), "/var/lib/twdb/database.twd")
	}
}

func Test_NewArchiveError_Defaults_BlockNum_To_Minus_One(t *testing.T) {
	t.Parallel()

	err := errors.NewArchiveError(nil, errors.ErrorCodeArchiveIO, "not block-addressed")
	if err.BlockNum() != -1 {
		t.Errorf("BlockNum() on a fresh ArchiveError = %d, want -1", err.BlockNum())
	}
}
