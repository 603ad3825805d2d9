// Package blobstore abstracts snapshot storage.
//
// Three backends ship with the library: an in-memory store for tests, a
// local-filesystem store with atomic writes, and a MinIO/S3-compatible store
// in the minio subpackage.
package blobstore
