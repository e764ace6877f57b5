package service

import (
	crand "crypto/rand"
	"strings"
)

const (
	codeAlphabet           = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	defaultCodeLength      = 8
	defaultCodeMaxAttempts = 10
	// 256 以内 36 的最大整数倍，超出部分丢弃以保持均匀分布
	codeRejectThreshold = 252
)

// codeGenerator 登记码生成器
type codeGenerator struct {
	length      int
	maxAttempts int
	random      func(n int) (string, error)
	exists      func(code string) (bool, error)
}

func newCodeGenerator(length, maxAttempts int, exists func(code string) (bool, error)) *codeGenerator {
	if length <= 0 {
		length = defaultCodeLength
	}
	if maxAttempts <= 0 {
		maxAttempts = defaultCodeMaxAttempts
	}
	return &codeGenerator{
		length:      length,
		maxAttempts: maxAttempts,
		random:      randomCode,
		exists:      exists,
	}
}

// Next 生成一个库内未使用的登记码
func (g *codeGenerator) Next() (string, error) {
	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		code, err := g.random(g.length)
		if err != nil {
			return "", err
		}
		used, err := g.exists(code)
		if err != nil {
			return "", wrapStorage("check unique code", err)
		}
		if !used {
			return code, nil
		}
	}
	return "", ErrCodeGenerationExhausted
}

func randomCode(n int) (string, error) {
	var b strings.Builder
	b.Grow(n)
	buf := make([]byte, n*2)
	for b.Len() < n {
		if _, err := crand.Read(buf); err != nil {
			return "", err
		}
		for _, v := range buf {
			if v >= codeRejectThreshold {
				continue
			}
			b.WriteByte(codeAlphabet[int(v)%len(codeAlphabet)])
			if b.Len() == n {
				break
			}
		}
	}
	return b.String(), nil
}
