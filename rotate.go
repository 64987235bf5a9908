package appendorr

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ArchiveJoiner sits between the destination file name and the policy suffix.
// Both bundled policies already begin their suffix with it, so archives sort
// lexically in creation order next to the live file.
const ArchiveJoiner = "--"

// rotate closes the current file, moves it aside under the policy's archive
// name, resets the policy and opens a fresh file at the original path.
// Runs on the background go routine only.
func (a *Appender) rotate() error {
	if err := a.closeFile(); err != nil {
		return err
	}

	newFile := a.config.Filepath + a.policy.Suffix()

	if err := a.Rename(a.config.Filepath, newFile); err != nil {
		return fmt.Errorf("archiving destination file: %w", err)
	}

	a.policy.Reset()

	if err := a.openFile(); err != nil {
		return err
	}

	a.log.Info("appender: rotated destination file", "path", a.config.Filepath, "archive", newFile)

	if a.config.PostRotate != nil {
		a.config.PostRotate(a.config.Filepath, newFile)
	}

	return a.prune()
}

// prune deletes archived files that fall outside the configured retention.
// Age is judged by file modification time; archives are immutable once
// created, so mod time is when the archive was cut.
func (a *Appender) prune() error {
	if a.config.MaxArchives == 0 && a.config.MaxArchiveAge == 0 {
		return nil
	}

	archives, err := a.findArchives()
	if err != nil {
		return err
	}

	keep := len(archives)

	for _, archive := range archives {
		tooOld := a.config.MaxArchiveAge > 0 && time.Since(archive.modTime) > a.config.MaxArchiveAge
		tooMany := a.config.MaxArchives > 0 && keep > a.config.MaxArchives

		if !tooOld && !tooMany {
			continue
		}

		if err := a.Remove(archive.path); err != nil {
			return fmt.Errorf("pruning archive: %w", err)
		}

		keep--
	}

	return nil
}

// archiveFile is one previously rotated file found on disk.
type archiveFile struct {
	path    string
	modTime time.Time
}

// findArchives lists this appender's archived files, oldest first.
// The suffix schemes sort lexically in creation order, so a name sort is a
// time sort.
func (a *Appender) findArchives() ([]archiveFile, error) {
	var (
		dir    = filepath.Dir(a.config.Filepath)
		prefix = filepath.Base(a.config.Filepath) + ArchiveJoiner
	)

	fileList, err := a.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing archives: %w", err)
	}

	archives := []archiveFile{}

	for _, file := range fileList {
		if !strings.HasPrefix(file.Name(), prefix) {
			continue // not our file.
		}

		archives = append(archives, archiveFile{
			path:    filepath.Join(dir, file.Name()),
			modTime: file.ModTime(),
		})
	}

	sort.Slice(archives, func(i, j int) bool { return archives[i].path < archives[j].path })

	return archives, nil
}
