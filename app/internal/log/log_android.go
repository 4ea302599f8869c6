// SPDX-License-Identifier: Unlicense OR MIT

package log

/*
#cgo LDFLAGS: -llog

#include <stdlib.h>
#include <android/log.h>
*/
import "C"

import (
	"bufio"
	"log"
	"os"
	"runtime"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Tag is the logcat tag of redirected lines.
const Tag = "krkr2"

// lineMax is the truncation limit from android/log.h, plus a \n.
const lineMax = 1024

func init() {
	// Android's logcat already includes timestamps.
	log.SetFlags(log.Flags() &^ log.LstdFlags)
	logFd(os.Stdout.Fd(), C.int(C.ANDROID_LOG_INFO))
	logFd(os.Stderr.Fd(), C.int(C.ANDROID_LOG_WARN))
}

func logFd(fd uintptr, prio C.int) {
	r, w, err := os.Pipe()
	if err != nil {
		panic(err)
	}
	if err := unix.Dup3(int(w.Fd()), int(fd), unix.O_CLOEXEC); err != nil {
		panic(err)
	}
	go func() {
		tag := C.CString(Tag)
		defer C.free(unsafe.Pointer(tag))
		lineBuf := bufio.NewReaderSize(r, lineMax)
		// The buffer to pass to C, including the terminating '\0'.
		buf := make([]byte, lineBuf.Size()+1)
		cbuf := (*C.char)(unsafe.Pointer(&buf[0]))
		for {
			line, _, err := lineBuf.ReadLine()
			if err != nil {
				break
			}
			copy(buf, line)
			buf[len(line)] = 0
			C.__android_log_write(prio, tag, cbuf)
		}
		// The garbage collector doesn't know that w's fd was dup'ed.
		// Avoid finalizing w, and thereby avoid its finalizer closing its fd.
		runtime.KeepAlive(w)
	}()
}
