//go:build tools
// +build tools

// tools 패키지는 go:generate(stringer, mockgen)와 포매터 버전을 go.mod에 고정합니다.
package tools

import (
	_ "github.com/golang/mock/mockgen"
	_ "github.com/incu6us/goimports-reviser/v3"
	_ "github.com/rakyll/gotest"
	_ "golang.org/x/tools/cmd/goimports"
	_ "golang.org/x/tools/cmd/stringer"
)
