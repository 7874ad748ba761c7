package webdav

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/studio-b12/gowebdav"
)

// Publisher uploads generated report documents to the remote WebDAV store
// under report/<owner>/<YYYYMMDD>/.
type Publisher struct {
	client *gowebdav.Client
	owner  string
}

type Options struct {
	Hostname string
	Login    string
	Password string
	Owner    string
}

func NewPublisher(opts Options) (*Publisher, error) {
	if opts.Hostname == "" {
		return nil, fmt.Errorf("webdav hostname is required")
	}
	if opts.Owner == "" {
		return nil, fmt.Errorf("report owner is required")
	}
	return &Publisher{
		client: gowebdav.NewClient(opts.Hostname, opts.Login, opts.Password),
		owner:  opts.Owner,
	}, nil
}

// Publish uploads the local file to the date-scoped remote directory.
// Directory creation errors are tolerated: the path usually exists after the
// first run of a day.
func (p *Publisher) Publish(ctx context.Context, localPath string, runDate time.Time) error {
	logger := zerolog.Ctx(ctx)

	f, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("open local report %s: %w", localPath, err)
	}
	defer f.Close()

	remoteDir := path.Join("report", p.owner, runDate.Format("20060102"))
	if err := p.client.MkdirAll(remoteDir, 0o755); err != nil {
		logger.Debug().Err(err).Str("dir", remoteDir).Msg("remote mkdir reported an error, continuing")
	}

	remotePath := path.Join(remoteDir, filepath.Base(localPath))
	if err := p.client.WriteStream(remotePath, f, 0o644); err != nil {
		return fmt.Errorf("upload %s: %w", remotePath, err)
	}

	logger.Info().Str("remote", remotePath).Msg("report uploaded")
	return nil
}
