//go:build windows

package platform

import (
	"fmt"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Keys are the two Windows named-object identifiers: one for the named
// mutex guarding the region, one for the named file mapping backing it.
// Both names, NUL included, must fit in the 24-byte Win32 object-name budget.
type Keys struct {
	Mutex   string
	Mapping string
}

// GetKeys derives the Windows object names for isPerUser.
func GetKeys(isPerUser bool) Keys {
	return Keys{
		Mutex:   deriveName("flshm-m-", deriveSeed(isPerUser, "sem"), 23),
		Mapping: deriveName("flshm-s-", deriveSeed(isPerUser, "shm"), 23),
	}
}

type windowsHandle struct {
	mutex   windows.Handle
	mapping windows.Handle
	addr    uintptr
	data    []byte

	closed int32
}

func open(isPerUser bool) (Handle, error) {
	keys := GetKeys(isPerUser)

	mutexName, err := windows.UTF16PtrFromString(keys.Mutex)
	if err != nil {
		return nil, fmt.Errorf("flshm: mutex name: %w", err)
	}

	mutex, err := windows.CreateMutex(nil, false, mutexName)
	if err != nil {
		return nil, fmt.Errorf("flshm: CreateMutex: %w", err)
	}

	mappingName, err := windows.UTF16PtrFromString(keys.Mapping)
	if err != nil {
		windows.CloseHandle(mutex)
		return nil, fmt.Errorf("flshm: mapping name: %w", err)
	}

	mapping, err := windows.CreateFileMapping(
		windows.InvalidHandle,
		nil,
		windows.PAGE_READWRITE,
		0,
		RegionSize,
		mappingName,
	)
	if err != nil {
		windows.CloseHandle(mutex)
		return nil, fmt.Errorf("flshm: CreateFileMapping: %w", err)
	}

	addr, err := windows.MapViewOfFile(mapping, windows.FILE_MAP_WRITE, 0, 0, RegionSize)
	if err != nil {
		windows.CloseHandle(mapping)
		windows.CloseHandle(mutex)
		return nil, fmt.Errorf("flshm: MapViewOfFile: %w", err)
	}

	data := unsafe.Slice((*byte)(unsafe.Pointer(addr)), RegionSize)

	return &windowsHandle{
		mutex:   mutex,
		mapping: mapping,
		addr:    addr,
		data:    data,
	}, nil
}

func (h *windowsHandle) Bytes() []byte { return h.data }

func (h *windowsHandle) Lock() error {
	ev, err := windows.WaitForSingleObject(h.mutex, windows.INFINITE)
	if err != nil {
		return fmt.Errorf("flshm: WaitForSingleObject: %w", err)
	}
	if ev != windows.WAIT_OBJECT_0 && ev != windows.WAIT_ABANDONED {
		return fmt.Errorf("flshm: unexpected wait result %d", ev)
	}
	return nil
}

func (h *windowsHandle) Unlock() error {
	if err := windows.ReleaseMutex(h.mutex); err != nil {
		return fmt.Errorf("flshm: ReleaseMutex: %w", err)
	}
	return nil
}

func (h *windowsHandle) Close() error {
	if !atomic.CompareAndSwapInt32(&h.closed, 0, 1) {
		return nil
	}

	var firstErr error
	if err := windows.FlushViewOfFile(h.addr, 0); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := windows.UnmapViewOfFile(h.addr); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := windows.CloseHandle(h.mapping); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := windows.CloseHandle(h.mutex); err != nil && firstErr == nil {
		firstErr = err
	}
	h.data = nil
	return firstErr
}
