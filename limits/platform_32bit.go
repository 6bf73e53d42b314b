//go:build 386 || arm || mips || mipsle

package limits

const defaultMaxImageBytesForPlatform = 1 << 30 // 1 GiB
