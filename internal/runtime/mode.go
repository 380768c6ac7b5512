package runtime

import (
	"os"
)

type Mode int

const (
	ModeDev Mode = iota
	ModeProd
)

func GetMode() Mode {
	if os.Getenv("HEIMDALL_DEV") == "1" {
		return ModeDev
	}
	return ModeProd
}

func IsDev() bool {
	return GetMode() == ModeDev
}

func IsProd() bool {
	return GetMode() == ModeProd
}
