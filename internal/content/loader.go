package content

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Reader is the read side of the content store.
type Reader interface {
	Profile(ctx context.Context) (*Profile, error)
	Skills(ctx context.Context) ([]Skill, error)
	Projects(ctx context.Context) ([]Project, error)
}

// Snapshot is the resolved view of the portfolio content.
type Snapshot struct {
	Profile  Profile   `json:"profile"`
	Skills   []Skill   `json:"skills"`
	Projects []Project `json:"projects"`
	Loading  bool      `json:"loading"`

	ProfileSource  Source `json:"-"`
	SkillsSource   Source `json:"-"`
	ProjectsSource Source `json:"-"`
}

func fallbackSnapshot(loading bool) *Snapshot {
	return &Snapshot{
		Profile:        FallbackProfile(),
		Skills:         FallbackSkills(),
		Projects:       FallbackProjects(),
		Loading:        loading,
		ProfileSource:  SourceFallback,
		SkillsSource:   SourceFallback,
		ProjectsSource: SourceFallback,
	}
}

// clone deep-copies s so callers never share memory with the published
// snapshot.
func (s *Snapshot) clone() Snapshot {
	c := *s
	c.Profile = s.Profile.clone()
	c.Skills = make([]Skill, len(s.Skills))
	for i, sk := range s.Skills {
		c.Skills[i] = sk.clone()
	}
	c.Projects = make([]Project, len(s.Projects))
	for i, p := range s.Projects {
		c.Projects[i] = p.clone()
	}
	return c
}

// Loader reads the content store once and publishes the resolved snapshot.
type Loader struct {
	store  Reader
	logger *log.Logger

	once sync.Once
	done chan struct{}
	snap atomic.Pointer[Snapshot]
}

// NewLoader returns a loader serving fallback content until Load settles.
func NewLoader(store Reader, logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.Default()
	}
	l := &Loader{store: store, logger: logger, done: make(chan struct{})}
	l.snap.Store(fallbackSnapshot(true))
	return l
}

// Snapshot returns the current snapshot. Until the load settles it is the
// fallback content with Loading set.
func (l *Loader) Snapshot() Snapshot {
	return l.snap.Load().clone()
}

// Done is closed once the final snapshot is published.
func (l *Loader) Done() <-chan struct{} {
	return l.done
}

// Wait blocks until the load settles or ctx ends.
func (l *Loader) Wait(ctx context.Context) (Snapshot, error) {
	select {
	case <-l.done:
		return l.Snapshot(), nil
	case <-ctx.Done():
		return l.Snapshot(), ctx.Err()
	}
}

// Load reads the three collections concurrently and publishes the result.
// Only the first call talks to the store; later and concurrent calls wait
// for it and return the same snapshot.
func (l *Loader) Load(ctx context.Context) Snapshot {
	l.once.Do(func() { l.load(ctx) })
	return l.Snapshot()
}

func (l *Loader) load(ctx context.Context) {
	defer close(l.done)
	defer func() {
		if r := recover(); r != nil {
			l.logger.Printf("Unexpected error loading content: %v", r)
			l.snap.Store(fallbackSnapshot(false))
		}
	}()

	var (
		profile  Fetch[Profile]
		skills   Fetch[[]Skill]
		projects Fetch[[]Project]
	)

	// Every task returns nil so one failed read never cancels the others.
	var g errgroup.Group
	g.Go(func() error {
		profile = guard("profile", func() Fetch[Profile] {
			return profileFetch(l.store.Profile(ctx))
		})
		return nil
	})
	g.Go(func() error {
		skills = guard("skills", func() Fetch[[]Skill] {
			return listFetch[Skill](l.store.Skills(ctx))
		})
		return nil
	})
	g.Go(func() error {
		projects = guard("projects", func() Fetch[[]Project] {
			return listFetch[Project](l.store.Projects(ctx))
		})
		return nil
	})
	_ = g.Wait()

	l.logFetch("profile", profile.Err())
	l.logFetch("skills", skills.Err())
	l.logFetch("projects", projects.Err())

	s := &Snapshot{}
	s.Profile, s.ProfileSource = Resolve(profile, FallbackProfile())
	s.Skills, s.SkillsSource = Resolve(skills, FallbackSkills())
	s.Projects, s.ProjectsSource = Resolve(projects, FallbackProjects())
	l.snap.Store(s)

	l.logger.Printf("Content loaded: profile=%s skills=%s (%d) projects=%s (%d)",
		s.ProfileSource, s.SkillsSource, len(s.Skills), s.ProjectsSource, len(s.Projects))
}

func (l *Loader) logFetch(collection string, err error) {
	if err != nil {
		l.logger.Printf("Error fetching %s: %v", collection, err)
	}
}

// guard runs one read, turning a panic into a failed fetch.
func guard[T any](collection string, read func() Fetch[T]) (f Fetch[T]) {
	defer func() {
		if r := recover(); r != nil {
			f = Failed[T](fmt.Errorf("%s read panicked: %v", collection, r))
		}
	}()
	return read()
}
