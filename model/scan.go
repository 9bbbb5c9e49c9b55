package model

type ScanResult struct {
	Path    string
	Message string
}
