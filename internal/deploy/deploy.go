// Package deploy uploads the built site to the production host over SFTP,
// precompressing text assets with brotli so the web server can serve them
// without compressing on the fly.
package deploy

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"

	"github.com/910cpr/ew2landers/internal/logger"
)

// Options configures one deploy. Host, User, and one of Password or KeyPath
// come from the environment; RemoteDir is the docroot on the host.
type Options struct {
	Host      string
	Port      int
	User      string
	Password  string
	KeyPath   string
	RemoteDir string
}

// FromEnv reads deploy credentials from DEPLOY_HOST, DEPLOY_PORT,
// DEPLOY_USER, DEPLOY_PASSWORD, DEPLOY_KEY, and DEPLOY_DIR.
func FromEnv() (Options, error) {
	opts := Options{
		Host:      os.Getenv("DEPLOY_HOST"),
		Port:      22,
		User:      os.Getenv("DEPLOY_USER"),
		Password:  os.Getenv("DEPLOY_PASSWORD"),
		KeyPath:   os.Getenv("DEPLOY_KEY"),
		RemoteDir: os.Getenv("DEPLOY_DIR"),
	}
	if p := os.Getenv("DEPLOY_PORT"); p != "" {
		if _, err := fmt.Sscanf(p, "%d", &opts.Port); err != nil {
			return opts, fmt.Errorf("parsing DEPLOY_PORT: %w", err)
		}
	}

	if opts.Host == "" || opts.User == "" || opts.RemoteDir == "" {
		return opts, fmt.Errorf("DEPLOY_HOST, DEPLOY_USER, and DEPLOY_DIR must be set")
	}
	if opts.Password == "" && opts.KeyPath == "" {
		return opts, fmt.Errorf("one of DEPLOY_PASSWORD or DEPLOY_KEY must be set")
	}
	return opts, nil
}

// Deploy precompresses the output tree and uploads everything to the host.
// Returns the number of files uploaded.
func Deploy(outputDir string, opts Options) (int, error) {
	compressed, err := Precompress(outputDir)
	if err != nil {
		return 0, err
	}
	logger.Info("precompressed assets", logger.Fields{"files": compressed})

	client, closer, err := connect(opts)
	if err != nil {
		return 0, err
	}
	defer closer()

	uploaded := 0
	err = filepath.WalkDir(outputDir, func(local string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(outputDir, local)
		if err != nil {
			return err
		}
		remote := path.Join(opts.RemoteDir, filepath.ToSlash(rel))

		if err := upload(client, local, remote); err != nil {
			return fmt.Errorf("uploading %s: %w", rel, err)
		}
		uploaded++
		return nil
	})
	if err != nil {
		return uploaded, err
	}

	logger.Info("deploy complete", logger.Fields{
		"host":  opts.Host,
		"files": uploaded,
	})
	return uploaded, nil
}

func connect(opts Options) (*sftp.Client, func(), error) {
	var auth []ssh.AuthMethod
	if opts.KeyPath != "" {
		keyData, err := os.ReadFile(opts.KeyPath)
		if err != nil {
			return nil, nil, fmt.Errorf("reading deploy key: %w", err)
		}
		signer, err := ssh.ParsePrivateKey(keyData)
		if err != nil {
			return nil, nil, fmt.Errorf("parsing deploy key: %w", err)
		}
		auth = append(auth, ssh.PublicKeys(signer))
	}
	if opts.Password != "" {
		auth = append(auth, ssh.Password(opts.Password))
	}

	sshCfg := &ssh.ClientConfig{
		User: opts.User,
		Auth: auth,
		// The deploy host is pinned by DNS inside our infrastructure.
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
	}

	addr := fmt.Sprintf("%s:%d", opts.Host, opts.Port)
	conn, err := ssh.Dial("tcp", addr, sshCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to %s: %w", addr, err)
	}

	client, err := sftp.NewClient(conn)
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("opening sftp session: %w", err)
	}

	closer := func() {
		client.Close()
		conn.Close()
	}
	return client, closer, nil
}

func upload(client *sftp.Client, local, remote string) error {
	if err := client.MkdirAll(path.Dir(remote)); err != nil {
		return fmt.Errorf("creating remote directory: %w", err)
	}

	data, err := os.ReadFile(local)
	if err != nil {
		return err
	}

	f, err := client.Create(remote)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return err
	}
	return nil
}

// compressible lists the extensions worth precompressing.
var compressible = map[string]bool{
	".html": true,
	".xml":  true,
	".json": true,
	".css":  true,
	".js":   true,
	".ics":  true,
	".svg":  true,
}

func isCompressible(name string) bool {
	return compressible[strings.ToLower(filepath.Ext(name))]
}
