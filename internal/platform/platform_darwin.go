//go:build darwin

package platform

/*
#include <stdlib.h>
#include <errno.h>
#include <fcntl.h>
#include <semaphore.h>
#include <sys/ipc.h>
#include <sys/shm.h>

static sem_t *flshm_sem_open(const char *name, int *err) {
	sem_t *s = sem_open(name, O_CREAT, 0600, 1);
	if (s == SEM_FAILED) {
		*err = errno;
		return NULL;
	}
	return s;
}
*/
import "C"

import (
	"fmt"
	"sync/atomic"
	"unsafe"
)

// Keys are a named POSIX semaphore plus a SysV shared-memory key, matching
// flshm.h's __APPLE__ branch (sem_t *semdesc; int shmid).
type Keys struct {
	Sem string
	Shm int32
}

// GetKeys derives the macOS semaphore name and SysV shm key for isPerUser.
func GetKeys(isPerUser bool) Keys {
	return Keys{
		Sem: deriveName("/flshm-", deriveSeed(isPerUser, "sem"), 23),
		Shm: int32(deriveUint32(deriveSeed(isPerUser, "shm"))),
	}
}

type darwinHandle struct {
	sem  *C.sem_t
	shm  C.int
	addr unsafe.Pointer
	data []byte

	closed int32
}

func open(isPerUser bool) (Handle, error) {
	keys := GetKeys(isPerUser)

	semName := C.CString(keys.Sem)
	defer C.free(unsafe.Pointer(semName))

	var errno C.int
	sem := C.flshm_sem_open(semName, &errno)
	if sem == nil {
		return nil, fmt.Errorf("flshm: sem_open: errno %d", errno)
	}

	shmid, shmErr := C.shmget(C.key_t(keys.Shm), C.size_t(RegionSize), C.IPC_CREAT|0600)
	if err := cgoErr(shmErr); err != nil {
		C.sem_close(sem)
		return nil, fmt.Errorf("flshm: shmget: %w", err)
	}

	addr, atErr := C.shmat(shmid, nil, 0)
	if err := cgoErr(atErr); err != nil {
		C.sem_close(sem)
		return nil, fmt.Errorf("flshm: shmat: %w", err)
	}

	data := unsafe.Slice((*byte)(addr), RegionSize)

	return &darwinHandle{
		sem:  sem,
		shm:  shmid,
		addr: addr,
		data: data,
	}, nil
}

func (h *darwinHandle) Bytes() []byte { return h.data }

func (h *darwinHandle) Lock() error {
	_, waitErr := C.sem_wait(h.sem)
	if err := cgoErr(waitErr); err != nil {
		return fmt.Errorf("flshm: sem_wait: %w", err)
	}
	return nil
}

func (h *darwinHandle) Unlock() error {
	_, postErr := C.sem_post(h.sem)
	if err := cgoErr(postErr); err != nil {
		return fmt.Errorf("flshm: sem_post: %w", err)
	}
	return nil
}

func (h *darwinHandle) Close() error {
	if !atomic.CompareAndSwapInt32(&h.closed, 0, 1) {
		return nil
	}

	var firstErr error
	if _, dtErr := C.shmdt(h.addr); cgoErr(dtErr) != nil && firstErr == nil {
		firstErr = cgoErr(dtErr)
	}
	if _, closeErr := C.sem_close(h.sem); cgoErr(closeErr) != nil && firstErr == nil {
		firstErr = cgoErr(closeErr)
	}
	h.data = nil
	return firstErr
}
