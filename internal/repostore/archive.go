package repostore

import (
	"archive/tar"
	"context"
	"io"

	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/klauspost/compress/zstd"
)

// Archive writes the tree at ref as a zstd-compressed tarball.
func (s *GitStore) Archive(ctx context.Context, location, ref string, w io.Writer) error {
	repo, err := s.open(location)
	if err != nil {
		return err
	}
	commit, err := resolveCommit(repo, ref)
	if err != nil {
		return err
	}
	tree, err := commit.Tree()
	if err != nil {
		return storageErr("read tree", err)
	}

	enc, err := zstd.NewWriter(w)
	if err != nil {
		return storageErr("archive", err)
	}
	tw := tar.NewWriter(enc)

	err = tree.Files().ForEach(func(f *object.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		mode, err := f.Mode.ToOSFileMode()
		if err != nil {
			return err
		}
		hdr := &tar.Header{
			Name:    f.Name,
			Mode:    int64(mode.Perm()),
			Size:    f.Size,
			ModTime: commit.Committer.When,
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		r, err := f.Reader()
		if err != nil {
			return err
		}
		defer r.Close()
		_, err = io.Copy(tw, r)
		return err
	})
	if err != nil {
		_ = enc.Close()
		return storageErr("archive", err)
	}

	if err := tw.Close(); err != nil {
		_ = enc.Close()
		return storageErr("archive", err)
	}
	if err := enc.Close(); err != nil {
		return storageErr("archive", err)
	}
	return nil
}
