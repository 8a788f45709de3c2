//go:build !windows && !darwin

package platform

/*
#include <errno.h>
#include <sys/ipc.h>
#include <sys/sem.h>
#include <sys/shm.h>

#if defined(__GLIBC__)
// glibc does not define semun; every other libc does.
union semun {
	int val;
	struct semid_ds *buf;
	unsigned short *array;
};
#endif

static int flshm_sem_create(key_t key) {
	int semid = semget(key, 1, IPC_CREAT | IPC_EXCL | 0600);
	if (semid >= 0) {
		union semun arg;
		arg.val = 1;
		if (semctl(semid, 0, SETVAL, arg) < 0) {
			return -1;
		}
		return semid;
	}
	if (errno != EEXIST) {
		return -1;
	}
	return semget(key, 1, 0600);
}

static int flshm_sem_lock(int semid) {
	struct sembuf op = {0, -1, 0};
	return semop(semid, &op, 1);
}

static int flshm_sem_unlock(int semid) {
	struct sembuf op = {0, 1, 0};
	return semop(semid, &op, 1);
}
*/
import "C"

import (
	"fmt"
	"sync/atomic"
	"unsafe"
)

// Keys are a pair of SysV numeric keys, matching flshm.h's fallback branch
// (key_t sem; key_t shm) used on every Unix that is not macOS.
type Keys struct {
	Sem int32
	Shm int32
}

// GetKeys derives the SysV semaphore and shared-memory keys for isPerUser.
func GetKeys(isPerUser bool) Keys {
	return Keys{
		Sem: int32(deriveUint32(deriveSeed(isPerUser, "sem"))),
		Shm: int32(deriveUint32(deriveSeed(isPerUser, "shm"))),
	}
}

type unixHandle struct {
	semid C.int
	shmid C.int
	addr  unsafe.Pointer
	data  []byte

	closed int32
}

func open(isPerUser bool) (Handle, error) {
	keys := GetKeys(isPerUser)

	semid := C.flshm_sem_create(C.key_t(keys.Sem))
	if semid < 0 {
		return nil, fmt.Errorf("flshm: semget/semctl failed for key %d", keys.Sem)
	}

	shmid, shmErr := C.shmget(C.key_t(keys.Shm), C.size_t(RegionSize), C.IPC_CREAT|0600)
	if err := cgoErr(shmErr); err != nil {
		return nil, fmt.Errorf("flshm: shmget: %w", err)
	}

	addr, atErr := C.shmat(shmid, nil, 0)
	if err := cgoErr(atErr); err != nil {
		return nil, fmt.Errorf("flshm: shmat: %w", err)
	}

	data := unsafe.Slice((*byte)(addr), RegionSize)

	return &unixHandle{
		semid: semid,
		shmid: shmid,
		addr:  addr,
		data:  data,
	}, nil
}

func (h *unixHandle) Bytes() []byte { return h.data }

func (h *unixHandle) Lock() error {
	ret, lockErr := C.flshm_sem_lock(h.semid)
	if ret < 0 {
		return fmt.Errorf("flshm: semop (lock): %w", cgoErr(lockErr))
	}
	return nil
}

func (h *unixHandle) Unlock() error {
	ret, unlockErr := C.flshm_sem_unlock(h.semid)
	if ret < 0 {
		return fmt.Errorf("flshm: semop (unlock): %w", cgoErr(unlockErr))
	}
	return nil
}

func (h *unixHandle) Close() error {
	if !atomic.CompareAndSwapInt32(&h.closed, 0, 1) {
		return nil
	}

	_, dtErr := C.shmdt(h.addr)
	h.data = nil
	if err := cgoErr(dtErr); err != nil {
		return fmt.Errorf("flshm: shmdt: %w", err)
	}
	return nil
}
