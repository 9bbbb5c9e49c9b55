package constants

import "os"

// stSh: ancillary, private, reserved-bit valid, safe to copy — decoders
// skip it and editors keep it.
const DefaultChunkType = "stSh"

const DefaultServeAddr = ":8080"

func GetChunkType() string {
	if t := os.Getenv("PNGSTASH_TYPE"); t != "" {
		return t
	}
	return DefaultChunkType
}

func GetServeAddr() string {
	if addr := os.Getenv("PNGSTASH_ADDR"); addr != "" {
		return addr
	}
	return DefaultServeAddr
}
