//go:build !unix

package platform

import "runtime"

func machine() (string, error) {
	return runtime.GOARCH, nil
}
