// Package storage archives raw vendor payloads in S3 compatible object storage.
//
// It wraps the MinIO Go client behind a narrow Client interface so the archive can be
// tested with the mocks in core/storage/mocks. Both AWS S3 and self-hosted MinIO work.
//
// Archiving is best effort: the vendor client logs a failed upload and carries on.
//
// # Usage
//
//	client, err := storage.NewClient(cfg)
//	archive := storage.NewArchive(client, cfg.Bucket, cfg.ArchivePrefix)
//	err = archive.EnsureBucket(ctx, cfg.Region)
//	tierClient.SetArchiver(archive)
package storage
