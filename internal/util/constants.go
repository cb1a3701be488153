package util

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

// AllowedMaterialExtensions lists the plain-text formats accepted as
// generation source material.
var AllowedMaterialExtensions = []string{".txt", ".md", ".text"}
