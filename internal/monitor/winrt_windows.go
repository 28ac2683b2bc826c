//go:build windows
// +build windows

package monitor

import (
	"context"
	"errors"
	"fmt"
	"syscall"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modcombase = windows.NewLazySystemDLL("combase.dll")

	procRoInitialize              = modcombase.NewProc("RoInitialize")
	procRoUninitialize            = modcombase.NewProc("RoUninitialize")
	procRoGetActivationFactory    = modcombase.NewProc("RoGetActivationFactory")
	procWindowsCreateString       = modcombase.NewProc("WindowsCreateString")
	procWindowsDeleteString       = modcombase.NewProc("WindowsDeleteString")
	procWindowsGetStringRawBuffer = modcombase.NewProc("WindowsGetStringRawBuffer")
)

const (
	roInitMultithreaded = 1
	rpcEChangedMode     = 0x80010106

	// IUnknown
	vtblQueryInterface = 0
	vtblRelease        = 2

	// IAsyncInfo
	vtblAsyncInfoGetStatus    = 7
	vtblAsyncInfoGetErrorCode = 8
	vtblAsyncInfoCancel       = 9

	// IAsyncOperation<T>
	vtblAsyncOperationGetResults = 8

	asyncStatusStarted   = 0
	asyncStatusCompleted = 1
	asyncStatusCanceled  = 2
	asyncStatusError     = 3

	asyncPollInterval = 2 * time.Millisecond
)

var iidIAsyncInfo = windows.GUID{
	Data1: 0x00000036,
	Data2: 0x0000,
	Data3: 0x0000,
	Data4: [8]byte{0xC0, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x46},
}

var (
	errAsyncCanceled = errors.New("async operation canceled")
	errAsyncTimeout  = errors.New("async operation timed out")
	errNullResult    = errors.New("call returned no object")
)

// hresult is a failed COM call result
type hresult uint32

func (h hresult) Error() string {
	return fmt.Sprintf("winrt call failed: HRESULT 0x%08X", uint32(h))
}

func checkHR(r uintptr) error {
	if int32(r) < 0 {
		return hresult(uint32(r))
	}
	return nil
}

// comObject is a raw COM interface pointer. The first word of the object
// points at its method table.
type comObject struct {
	vtbl *[64]uintptr
}

// call invokes method idx of the interface with the object as first argument
func (o *comObject) call(idx int, args ...uintptr) error {
	full := make([]uintptr, 0, len(args)+1)
	full = append(full, uintptr(unsafe.Pointer(o)))
	full = append(full, args...)
	r, _, _ := syscall.SyscallN(o.vtbl[idx], full...)
	return checkHR(r)
}

// callObject invokes a method whose only argument is an interface out
// pointer and returns that interface
func (o *comObject) callObject(idx int) (*comObject, error) {
	var out *comObject
	if err := o.call(idx, uintptr(unsafe.Pointer(&out))); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, errNullResult
	}
	return out, nil
}

func (o *comObject) callInt64(idx int) (int64, error) {
	var out int64
	err := o.call(idx, uintptr(unsafe.Pointer(&out)))
	return out, err
}

func (o *comObject) callString(idx int) (string, error) {
	var h hstring
	if err := o.call(idx, uintptr(unsafe.Pointer(&h))); err != nil {
		return "", err
	}
	defer h.delete()
	return h.String(), nil
}

func (o *comObject) queryInterface(iid *windows.GUID) (*comObject, error) {
	var out *comObject
	if err := o.call(vtblQueryInterface, uintptr(unsafe.Pointer(iid)), uintptr(unsafe.Pointer(&out))); err != nil {
		return nil, err
	}
	return out, nil
}

func (o *comObject) release() {
	if o != nil {
		syscall.SyscallN(o.vtbl[vtblRelease], uintptr(unsafe.Pointer(o)))
	}
}

// hstring is a WinRT string handle
type hstring uintptr

func newHString(s string) (hstring, error) {
	u16, err := windows.UTF16FromString(s)
	if err != nil {
		return 0, err
	}
	var h hstring
	r, _, _ := procWindowsCreateString.Call(
		uintptr(unsafe.Pointer(&u16[0])),
		uintptr(len(u16)-1),
		uintptr(unsafe.Pointer(&h)))
	if err := checkHR(r); err != nil {
		return 0, err
	}
	return h, nil
}

func (h hstring) String() string {
	if h == 0 {
		return ""
	}
	var length uint32
	p, _, _ := procWindowsGetStringRawBuffer.Call(uintptr(h), uintptr(unsafe.Pointer(&length)))
	if p == 0 || length == 0 {
		return ""
	}
	return windows.UTF16ToString(unsafe.Slice((*uint16)(unsafe.Pointer(p)), length))
}

func (h hstring) delete() {
	if h != 0 {
		procWindowsDeleteString.Call(uintptr(h))
	}
}

// roInitialize joins the multithreaded apartment. It reports whether a
// matching roUninitialize is owed.
func roInitialize() (bool, error) {
	r, _, _ := procRoInitialize.Call(roInitMultithreaded)
	if uint32(r) == rpcEChangedMode {
		// Already in a single-threaded apartment; usable, but not ours to leave
		return false, nil
	}
	if err := checkHR(r); err != nil {
		return false, err
	}
	return true, nil
}

func roUninitialize() {
	procRoUninitialize.Call()
}

func activationFactory(class string, iid *windows.GUID) (*comObject, error) {
	name, err := newHString(class)
	if err != nil {
		return nil, err
	}
	defer name.delete()

	var factory *comObject
	r, _, _ := procRoGetActivationFactory.Call(
		uintptr(name),
		uintptr(unsafe.Pointer(iid)),
		uintptr(unsafe.Pointer(&factory)))
	if err := checkHR(r); err != nil {
		return nil, fmt.Errorf("activation factory for %s: %w", class, err)
	}
	return factory, nil
}

// await polls an IAsyncOperation until it settles and returns its result.
// The operation is cancelled on timeout or when ctx is done.
func await(ctx context.Context, op *comObject, timeout time.Duration) (*comObject, error) {
	info, err := op.queryInterface(&iidIAsyncInfo)
	if err != nil {
		return nil, err
	}
	defer info.release()

	deadline := time.Now().Add(timeout)
	for {
		var status int32
		if err := info.call(vtblAsyncInfoGetStatus, uintptr(unsafe.Pointer(&status))); err != nil {
			return nil, err
		}

		switch status {
		case asyncStatusCompleted:
			return op.callObject(vtblAsyncOperationGetResults)
		case asyncStatusCanceled:
			return nil, errAsyncCanceled
		case asyncStatusError:
			var code int32
			if err := info.call(vtblAsyncInfoGetErrorCode, uintptr(unsafe.Pointer(&code))); err != nil {
				return nil, err
			}
			return nil, hresult(uint32(code))
		}

		if time.Now().After(deadline) {
			_ = info.call(vtblAsyncInfoCancel)
			return nil, errAsyncTimeout
		}

		select {
		case <-ctx.Done():
			_ = info.call(vtblAsyncInfoCancel)
			return nil, ctx.Err()
		case <-time.After(asyncPollInterval):
		}
	}
}
