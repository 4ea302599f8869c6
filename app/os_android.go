// SPDX-License-Identifier: Unlicense OR MIT

package app

/*
#include <jni.h>

static jint gatekeeper_jni_GetJavaVM(JNIEnv *env, JavaVM **jvm) {
	return (*env)->GetJavaVM(env, jvm);
}

static jobject gatekeeper_jni_NewGlobalRef(JNIEnv *env, jobject obj) {
	return (*env)->NewGlobalRef(env, obj);
}

static void gatekeeper_jni_DeleteGlobalRef(JNIEnv *env, jobject obj) {
	(*env)->DeleteGlobalRef(env, obj);
}
*/
import "C"

import (
	"unsafe"

	_ "github.com/krkr2/gatekeeper/app/internal/log"
)

var theJVM *C.JavaVM

// theActivity is a global reference to the most recently created
// activity.
var theActivity C.jobject

//export Java_org_github_krkr2_GatekeeperActivity_onStartNative
func Java_org_github_krkr2_GatekeeperActivity_onStartNative(env *C.JNIEnv, activity C.jobject, bundle C.jobject) {
	if theJVM == nil {
		if res := C.gatekeeper_jni_GetJavaVM(env, &theJVM); res != 0 {
			panic("gatekeeper: GetJavaVM failed")
		}
	}
	// The activity is created again on configuration changes.
	if theActivity != 0 {
		C.gatekeeper_jni_DeleteGlobalRef(env, theActivity)
	}
	theActivity = C.gatekeeper_jni_NewGlobalRef(env, activity)
	NotifyStart(SavedState(bundle))
}

//export Java_org_github_krkr2_GatekeeperActivity_onActivityResultNative
func Java_org_github_krkr2_GatekeeperActivity_onActivityResultNative(env *C.JNIEnv, activity C.jobject, requestCode, resultCode C.jint, data C.jobject) {
	NotifyResult(int(requestCode), int(resultCode), ResultData(data))
}

// JavaVM returns the global JNI JavaVM, or 0 before the activity is
// created.
func JavaVM() uintptr {
	return uintptr(unsafe.Pointer(theJVM))
}

// Activity returns a JNI global reference to the running activity, or
// 0 before it is created.
func Activity() uintptr {
	return uintptr(theActivity)
}

// Main is a no-op on Android, where the activity drives the lifecycle.
func Main() {
}
