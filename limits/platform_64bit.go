//go:build !386 && !arm && !mips && !mipsle

package limits

const defaultMaxImageBytesForPlatform = 16 << 30 // 16 GiB
