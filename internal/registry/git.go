package registry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/chaz8081/claude-forge/internal/logging"
	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	gitssh "github.com/go-git/go-git/v5/plumbing/transport/ssh"
)

// RefLatest tracks the default branch of a pack.
const RefLatest = "latest"

var commitPattern = regexp.MustCompile(`^[0-9a-f]{7,40}$`)

// GitPack serves templates from a git repository. The repository is cloned
// into CachePath on first use and templates are read from the Path
// subdirectory of the worktree.
type GitPack struct {
	PackName  string
	URL       string
	CachePath string // e.g. ~/.cache/claude-forge/packs/<name>
	Path      string // subdirectory holding the templates; defaults to "."
	Ref       string // "latest", branch, tag or commit SHA

	cloneErr error // first failed clone; later lookups reuse it
}

func (p *GitPack) Name() string { return p.PackName }

func (p *GitPack) pinned() bool { return p.Ref != "" && p.Ref != RefLatest }

func (p *GitPack) pinnedToCommit() bool { return p.pinned() && commitPattern.MatchString(p.Ref) }

// auth uses the SSH agent for ssh URLs; https and local paths need none.
func (p *GitPack) auth() transport.AuthMethod {
	if !strings.HasPrefix(p.URL, "git@") && !strings.HasPrefix(p.URL, "ssh://") {
		return nil
	}
	auth, err := gitssh.NewSSHAgentAuth("git")
	if err != nil {
		logging.Debug("ssh agent unavailable", "pack", p.PackName, "error", err)
		return nil
	}
	return auth
}

// Root returns the directory inside the cache that holds the templates.
func (p *GitPack) Root() string {
	if p.Path == "" || p.Path == "." {
		return p.CachePath
	}
	return filepath.Join(p.CachePath, p.Path)
}

// Cached reports whether the pack has been cloned.
func (p *GitPack) Cached() bool {
	_, err := os.Stat(filepath.Join(p.CachePath, ".git"))
	return err == nil
}

// cloneCandidates returns the reference names to try, in order. A nil entry
// clones the default branch.
func (p *GitPack) cloneCandidates() []plumbing.ReferenceName {
	if !p.pinned() || p.pinnedToCommit() {
		return []plumbing.ReferenceName{""}
	}
	return []plumbing.ReferenceName{
		plumbing.NewBranchReferenceName(p.Ref),
		plumbing.NewTagReferenceName(p.Ref),
	}
}

// ensureCache clones the pack unless a clone already exists.
func (p *GitPack) ensureCache() error {
	if p.Cached() {
		return nil
	}
	log := logging.With("pack", p.PackName, "url", p.URL, "ref", p.Ref)

	var (
		repo    *git.Repository
		lastErr error
	)
	for _, ref := range p.cloneCandidates() {
		opts := &git.CloneOptions{URL: p.URL, Auth: p.auth()}
		if ref != "" {
			opts.ReferenceName = ref
			opts.SingleBranch = true
		}
		repo, lastErr = git.PlainClone(p.CachePath, false, opts)
		if lastErr == nil {
			break
		}
		log.Debug("clone attempt failed", "reference", ref, "error", lastErr)
		_ = os.RemoveAll(p.CachePath)
	}
	if lastErr != nil {
		if p.pinned() && !p.pinnedToCommit() {
			return fmt.Errorf("pack %q: ref %q is neither a branch nor a tag of %s", p.PackName, p.Ref, p.URL)
		}
		return fmt.Errorf("git clone %s: %w", p.URL, lastErr)
	}
	log.Debug("cloned template pack")

	if !p.pinnedToCommit() {
		return nil
	}
	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("worktree: %w", err)
	}
	hash, err := repo.ResolveRevision(plumbing.Revision(p.Ref))
	if err == nil {
		err = wt.Checkout(&git.CheckoutOptions{Hash: *hash})
	}
	if err != nil {
		_ = os.RemoveAll(p.CachePath)
		return fmt.Errorf("pack %q: commit %s not found: %w", p.PackName, p.Ref, err)
	}
	return nil
}

func (p *GitPack) dir() *DirSource {
	return &DirSource{SourceName: p.PackName, Root: p.Root()}
}

// cache clones the pack at most once per process. A failed clone is not
// retried by lookups; Refresh retries it.
func (p *GitPack) cache() error {
	if p.cloneErr != nil {
		return p.cloneErr
	}
	p.cloneErr = p.ensureCache()
	return p.cloneErr
}

// Lookup clones the pack on first use and reads the template from it.
func (p *GitPack) Lookup(kind Kind, name string) (string, bool, error) {
	if err := p.cache(); err != nil {
		return "", false, err
	}
	return p.dir().Lookup(kind, name)
}

// List returns the template names the pack provides for kind.
func (p *GitPack) List(kind Kind) ([]string, error) {
	if err := p.cache(); err != nil {
		return nil, err
	}
	return p.dir().List(kind)
}

// Refresh brings the cache up to date. Packs tracking "latest" are pulled;
// pinned packs only need to exist since their checkout never moves.
func (p *GitPack) Refresh() error {
	if p.pinned() || !p.Cached() {
		p.cloneErr = p.ensureCache()
		return p.cloneErr
	}

	repo, err := git.PlainOpen(p.CachePath)
	if err != nil {
		return fmt.Errorf("open cached pack %q: %w", p.PackName, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("worktree: %w", err)
	}
	err = wt.Pull(&git.PullOptions{Auth: p.auth()})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("git pull %s: %w", p.URL, err)
	}
	return nil
}

// Head returns the abbreviated commit checked out in the cache.
func (p *GitPack) Head() (string, error) {
	repo, err := git.PlainOpen(p.CachePath)
	if err != nil {
		return "", fmt.Errorf("open cached pack %q: %w", p.PackName, err)
	}
	ref, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("head: %w", err)
	}
	return ref.Hash().String()[:7], nil
}
