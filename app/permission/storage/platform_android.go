// SPDX-License-Identifier: Unlicense OR MIT

package storage

/*
#include <jni.h>
#include <stdlib.h>
#include <sys/system_properties.h>

static int gatekeeper_sdk_property(char *value) {
	return __system_property_get("ro.build.version.sdk", value);
}

static jint gatekeeper_jni_GetEnv(JavaVM *vm, JNIEnv **env, jint version) {
	return (*vm)->GetEnv(vm, (void **)env, version);
}

static jint gatekeeper_jni_AttachCurrentThread(JavaVM *vm, JNIEnv **p_env, void *thr_args) {
	return (*vm)->AttachCurrentThread(vm, p_env, thr_args);
}

static jint gatekeeper_jni_DetachCurrentThread(JavaVM *vm) {
	return (*vm)->DetachCurrentThread(vm);
}

static jint gatekeeper_jni_PushLocalFrame(JNIEnv *env, jint capacity) {
	return (*env)->PushLocalFrame(env, capacity);
}

static void gatekeeper_jni_PopLocalFrame(JNIEnv *env) {
	(*env)->PopLocalFrame(env, NULL);
}

static jclass gatekeeper_jni_FindClass(JNIEnv *env, const char *name) {
	return (*env)->FindClass(env, name);
}

static jclass gatekeeper_jni_GetObjectClass(JNIEnv *env, jobject obj) {
	return (*env)->GetObjectClass(env, obj);
}

static jmethodID gatekeeper_jni_GetMethodID(JNIEnv *env, jclass clazz, const char *name, const char *sig) {
	return (*env)->GetMethodID(env, clazz, name, sig);
}

static jmethodID gatekeeper_jni_GetStaticMethodID(JNIEnv *env, jclass clazz, const char *name, const char *sig) {
	return (*env)->GetStaticMethodID(env, clazz, name, sig);
}

static jobject gatekeeper_jni_NewObjectA(JNIEnv *env, jclass clazz, jmethodID ctor, const jvalue *args) {
	return (*env)->NewObjectA(env, clazz, ctor, args);
}

static jint gatekeeper_jni_CallIntMethodA(JNIEnv *env, jobject obj, jmethodID method, const jvalue *args) {
	return (*env)->CallIntMethodA(env, obj, method, args);
}

static jobject gatekeeper_jni_CallObjectMethodA(JNIEnv *env, jobject obj, jmethodID method, const jvalue *args) {
	return (*env)->CallObjectMethodA(env, obj, method, args);
}

static void gatekeeper_jni_CallVoidMethodA(JNIEnv *env, jobject obj, jmethodID method, const jvalue *args) {
	(*env)->CallVoidMethodA(env, obj, method, args);
}

static jboolean gatekeeper_jni_CallStaticBooleanMethodA(JNIEnv *env, jclass cls, jmethodID method, const jvalue *args) {
	return (*env)->CallStaticBooleanMethodA(env, cls, method, args);
}

static jobject gatekeeper_jni_CallStaticObjectMethodA(JNIEnv *env, jclass cls, jmethodID method, const jvalue *args) {
	return (*env)->CallStaticObjectMethodA(env, cls, method, args);
}

static jstring gatekeeper_jni_NewString(JNIEnv *env, const jchar *unicodeChars, jsize len) {
	return (*env)->NewString(env, unicodeChars, len);
}

static jsize gatekeeper_jni_GetStringLength(JNIEnv *env, jstring str) {
	return (*env)->GetStringLength(env, str);
}

static const jchar *gatekeeper_jni_GetStringChars(JNIEnv *env, jstring str) {
	return (*env)->GetStringChars(env, str, NULL);
}

static void gatekeeper_jni_ReleaseStringChars(JNIEnv *env, jstring str, const jchar *chars) {
	(*env)->ReleaseStringChars(env, str, chars);
}

static jthrowable gatekeeper_jni_ExceptionOccurred(JNIEnv *env) {
	return (*env)->ExceptionOccurred(env);
}

static void gatekeeper_jni_ExceptionClear(JNIEnv *env) {
	(*env)->ExceptionClear(env);
}
*/
import "C"

import (
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"unicode/utf16"
	"unsafe"

	"github.com/krkr2/gatekeeper/app"
)

type jvalue uint64 // The largest JNI type fits in 64 bits.

const (
	// permissionGranted is PackageManager.PERMISSION_GRANTED.
	permissionGranted = 0
	// lengthLong is Toast.LENGTH_LONG.
	lengthLong = 1
	// sdkVersionM is the first API level with runtime permissions.
	sdkVersionM = 23
)

var errNoActivity = errors.New("storage: no activity")

type androidPlatform struct {
	sdkOnce sync.Once
	sdk     int
}

// NewPlatform returns the Platform of the running activity.
func NewPlatform() Platform {
	return new(androidPlatform)
}

func (p *androidPlatform) SDKVersion() int {
	p.sdkOnce.Do(func() {
		buf := make([]byte, C.PROP_VALUE_MAX)
		cbuf := (*C.char)(unsafe.Pointer(&buf[0]))
		n := C.gatekeeper_sdk_property(cbuf)
		if n <= 0 {
			return
		}
		sdk, err := strconv.Atoi(string(buf[:n]))
		if err != nil {
			return
		}
		p.sdk = sdk
	})
	return p.sdk
}

func (p *androidPlatform) IsExternalStorageManager() bool {
	var granted bool
	err := runInJVM(func(env *C.JNIEnv, activity C.jobject) error {
		cls, err := findClass(env, "android/os/Environment")
		if err != nil {
			return err
		}
		m, err := getStaticMethodID(env, cls, "isExternalStorageManager", "()Z")
		if err != nil {
			return err
		}
		res := C.gatekeeper_jni_CallStaticBooleanMethodA(env, cls, m, nil)
		if err := exception(env); err != nil {
			return err
		}
		granted = res == C.JNI_TRUE
		return nil
	})
	if err != nil {
		return false
	}
	return granted
}

func (p *androidPlatform) CheckSelfPermission(permission string) bool {
	if p.SDKVersion() < sdkVersionM {
		// Install time permissions.
		return true
	}
	var granted bool
	err := runInJVM(func(env *C.JNIEnv, activity C.jobject) error {
		m, err := getMethodID(env, C.gatekeeper_jni_GetObjectClass(env, activity), "checkSelfPermission", "(Ljava/lang/String;)I")
		if err != nil {
			return err
		}
		res := C.gatekeeper_jni_CallIntMethodA(env, activity, m, varArgs(jvalue(javaString(env, permission))))
		if err := exception(env); err != nil {
			return err
		}
		granted = res == permissionGranted
		return nil
	})
	if err != nil {
		return false
	}
	return granted
}

func (p *androidPlatform) PackageName() string {
	var pkg string
	runInJVM(func(env *C.JNIEnv, activity C.jobject) error {
		m, err := getMethodID(env, C.gatekeeper_jni_GetObjectClass(env, activity), "getPackageName", "()Ljava/lang/String;")
		if err != nil {
			return err
		}
		jstr := C.gatekeeper_jni_CallObjectMethodA(env, activity, m, nil)
		if err := exception(env); err != nil {
			return err
		}
		pkg = goString(env, C.jstring(jstr))
		return nil
	})
	return pkg
}

func (p *androidPlatform) StartActivityForResult(in Intent, requestCode int) error {
	return runInJVM(func(env *C.JNIEnv, activity C.jobject) error {
		intentClass, err := findClass(env, "android/content/Intent")
		if err != nil {
			return err
		}
		ctor, err := getMethodID(env, intentClass, "<init>", "(Ljava/lang/String;)V")
		if err != nil {
			return err
		}
		intent := C.gatekeeper_jni_NewObjectA(env, intentClass, ctor, varArgs(jvalue(javaString(env, in.Action))))
		if err := exception(env); err != nil {
			return err
		}
		if in.Data != "" {
			uriClass, err := findClass(env, "android/net/Uri")
			if err != nil {
				return err
			}
			parse, err := getStaticMethodID(env, uriClass, "parse", "(Ljava/lang/String;)Landroid/net/Uri;")
			if err != nil {
				return err
			}
			uri := C.gatekeeper_jni_CallStaticObjectMethodA(env, uriClass, parse, varArgs(jvalue(javaString(env, in.Data))))
			if err := exception(env); err != nil {
				return err
			}
			setData, err := getMethodID(env, intentClass, "setData", "(Landroid/net/Uri;)Landroid/content/Intent;")
			if err != nil {
				return err
			}
			C.gatekeeper_jni_CallObjectMethodA(env, intent, setData, varArgs(jvalue(uri)))
			if err := exception(env); err != nil {
				return err
			}
		}
		start, err := getMethodID(env, C.gatekeeper_jni_GetObjectClass(env, activity), "startActivityForResult", "(Landroid/content/Intent;I)V")
		if err != nil {
			return err
		}
		C.gatekeeper_jni_CallVoidMethodA(env, activity, start, varArgs(jvalue(intent), jvalue(requestCode)))
		if err := exception(env); err != nil {
			return fmt.Errorf("storage: start %s: %w", in.Action, err)
		}
		return nil
	})
}

func (p *androidPlatform) ShowToast(msg string) {
	runInJVM(func(env *C.JNIEnv, activity C.jobject) error {
		toastClass, err := findClass(env, "android/widget/Toast")
		if err != nil {
			return err
		}
		makeText, err := getStaticMethodID(env, toastClass, "makeText", "(Landroid/content/Context;Ljava/lang/CharSequence;I)Landroid/widget/Toast;")
		if err != nil {
			return err
		}
		toast := C.gatekeeper_jni_CallStaticObjectMethodA(env, toastClass, makeText, varArgs(jvalue(activity), jvalue(javaString(env, msg)), jvalue(lengthLong)))
		if err := exception(env); err != nil {
			return err
		}
		show, err := getMethodID(env, toastClass, "show", "()V")
		if err != nil {
			return err
		}
		C.gatekeeper_jni_CallVoidMethodA(env, toast, show, nil)
		return exception(env)
	})
}

// runInJVM runs f with a JNI environment for the current thread and a
// reference to the activity. Local references created by f are freed
// when it returns.
func runInJVM(f func(env *C.JNIEnv, activity C.jobject) error) error {
	vm := (*C.JavaVM)(unsafe.Pointer(app.JavaVM()))
	activity := C.jobject(app.Activity())
	if vm == nil || activity == 0 {
		return errNoActivity
	}
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	var env *C.JNIEnv
	if res := C.gatekeeper_jni_GetEnv(vm, &env, C.JNI_VERSION_1_6); res != C.JNI_OK {
		if res != C.JNI_EDETACHED {
			return fmt.Errorf("storage: JNI GetEnv failed with error %d", res)
		}
		if C.gatekeeper_jni_AttachCurrentThread(vm, &env, nil) != C.JNI_OK {
			return errors.New("storage: runInJVM: AttachCurrentThread failed")
		}
		defer C.gatekeeper_jni_DetachCurrentThread(vm)
	}
	if C.gatekeeper_jni_PushLocalFrame(env, 16) != 0 {
		C.gatekeeper_jni_ExceptionClear(env)
		return errors.New("storage: runInJVM: PushLocalFrame failed")
	}
	defer C.gatekeeper_jni_PopLocalFrame(env)
	return f(env, activity)
}

// exception clears and returns the pending Java exception, if any.
func exception(env *C.JNIEnv) error {
	thr := C.gatekeeper_jni_ExceptionOccurred(env)
	if thr == 0 {
		return nil
	}
	C.gatekeeper_jni_ExceptionClear(env)
	msg := "java exception"
	if cls := C.gatekeeper_jni_GetObjectClass(env, C.jobject(thr)); cls != 0 {
		m, err := getMethodID(env, cls, "toString", "()Ljava/lang/String;")
		if err == nil {
			jstr := C.gatekeeper_jni_CallObjectMethodA(env, C.jobject(thr), m, nil)
			if C.gatekeeper_jni_ExceptionOccurred(env) != 0 {
				C.gatekeeper_jni_ExceptionClear(env)
			} else if s := goString(env, C.jstring(jstr)); s != "" {
				msg = s
			}
		}
	}
	return errors.New(msg)
}

func findClass(env *C.JNIEnv, name string) (C.jclass, error) {
	n := C.CString(name)
	defer C.free(unsafe.Pointer(n))
	cls := C.gatekeeper_jni_FindClass(env, n)
	if err := exception(env); err != nil {
		return 0, err
	}
	return cls, nil
}

func getMethodID(env *C.JNIEnv, class C.jclass, method, sig string) (C.jmethodID, error) {
	m := C.CString(method)
	defer C.free(unsafe.Pointer(m))
	s := C.CString(sig)
	defer C.free(unsafe.Pointer(s))
	id := C.gatekeeper_jni_GetMethodID(env, class, m, s)
	if err := exception(env); err != nil {
		return nil, err
	}
	return id, nil
}

func getStaticMethodID(env *C.JNIEnv, class C.jclass, method, sig string) (C.jmethodID, error) {
	m := C.CString(method)
	defer C.free(unsafe.Pointer(m))
	s := C.CString(sig)
	defer C.free(unsafe.Pointer(s))
	id := C.gatekeeper_jni_GetStaticMethodID(env, class, m, s)
	if err := exception(env); err != nil {
		return nil, err
	}
	return id, nil
}

func javaString(env *C.JNIEnv, str string) C.jstring {
	if str == "" {
		return 0
	}
	utf16Chars := utf16.Encode([]rune(str))
	return C.gatekeeper_jni_NewString(env, (*C.jchar)(unsafe.Pointer(&utf16Chars[0])), C.jsize(len(utf16Chars)))
}

func goString(env *C.JNIEnv, str C.jstring) string {
	if str == 0 {
		return ""
	}
	n := int(C.gatekeeper_jni_GetStringLength(env, str))
	if n == 0 {
		return ""
	}
	chars := C.gatekeeper_jni_GetStringChars(env, str)
	defer C.gatekeeper_jni_ReleaseStringChars(env, str, chars)
	utf16Chars := unsafe.Slice((*uint16)(unsafe.Pointer(chars)), n)
	return string(utf16.Decode(utf16Chars))
}

func varArgs(args ...jvalue) *C.jvalue {
	if len(args) == 0 {
		return nil
	}
	return (*C.jvalue)(unsafe.Pointer(&args[0]))
}
