// Command keras prints version and build information of the keras module.
package main

import (
	"flag"
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/born-ml/keras"
	"github.com/born-ml/keras/backend/cpu"
	"k8s.io/klog/v2"
)

var flagBuild = flag.Bool("build", false, "Also print the module dependencies.")

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	fmt.Printf("keras %s (%s, %s/%s)\n", keras.Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	fmt.Printf("CPU: %s\n", cpu.Describe())
	if !*flagBuild {
		return
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		klog.Warning("build information not available")
		return
	}
	for _, dep := range info.Deps {
		fmt.Printf("  %s %s\n", dep.Path, dep.Version)
	}
}
