package dashboard

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/rpupo63/catalog-admin/errs"
)

// ScreenHandle is the type-erased view of a Screen used by the HTTP layer.
type ScreenHandle interface {
	Key() string
	Title() string
	Mount(ctx context.Context) error
	Refresh(ctx context.Context) error
	OpenAdd()
	OpenEdit(id int64) error
	OpenDelete(id int64) error
	Cancel()
	Dialog() Dialog
	Submit(ctx context.Context, values map[string]string) error
	ConfirmDelete(ctx context.Context) error
	View() View
}

// Screen is the list, dialog and draft of one entity type.
type Screen[T Entity] struct {
	desc    Descriptor[T]
	list    *ListController[T]
	gateway *MutationGateway
	notes   *Notifications
	logger  zerolog.Logger

	mu      sync.Mutex
	dialog  Dialog
	mounted bool
}

// NewScreen wires a list fetcher and a write backend under one descriptor.
// Notifications raised by the screen go to notes.
func NewScreen[T Entity](desc Descriptor[T], fetch Fetcher[T], backend Mutator, query Query, notes *Notifications, logger zerolog.Logger) *Screen[T] {
	logger = logger.With().Str("screen", desc.Key).Logger()
	query.Paged = desc.Paged

	s := &Screen[T]{
		desc:   desc,
		list:   NewListController(fetch, desc.SortKey, query, logger),
		notes:  notes,
		logger: logger,
		dialog: Closed{},
	}
	s.gateway = NewMutationGateway(backend, s.Refresh, logger)
	return s
}

func (s *Screen[T]) Key() string {
	return s.desc.Key
}

func (s *Screen[T]) Title() string {
	return s.desc.Title
}

func (s *Screen[T]) Descriptor() Descriptor[T] {
	return s.desc
}

// List exposes the list controller for paging and filtering.
func (s *Screen[T]) List() *ListController[T] {
	return s.list
}

// Mount loads the list the first time the screen is shown.
func (s *Screen[T]) Mount(ctx context.Context) error {
	if !s.markMounted() {
		return nil
	}
	return s.Refresh(ctx)
}

func (s *Screen[T]) markMounted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mounted {
		return false
	}
	s.mounted = true
	return true
}

// Refresh reloads the list. A failure raises an error notification and keeps
// the rows already shown.
func (s *Screen[T]) Refresh(ctx context.Context) error {
	if err := s.list.Load(ctx); err != nil {
		s.notes.Error("Error", fmt.Sprintf("Failed to fetch %s.", lower(s.desc.Title)))
		return err
	}
	return nil
}

// OpenAdd replaces any open dialog with an add dialog over a blank draft.
func (s *Screen[T]) OpenAdd() {
	s.setDialog(AddOpen{Draft: NewForm(s.desc.Fields)})
}

// OpenEdit opens an edit dialog seeded from the listed row with the given id.
func (s *Screen[T]) OpenEdit(id int64) error {
	record, ok := s.list.Find(id)
	if !ok {
		return errs.NewRecordNotListedError(s.desc.Singular, id)
	}
	values, err := recordValues(s.desc.Fields, record)
	if err != nil {
		return errs.NewInternalErrorWithCause("could not read record", err)
	}
	s.setDialog(EditOpen{ID: id, Draft: SeedForm(s.desc.Fields, values)})
	return nil
}

// OpenDelete asks for confirmation before deleting the listed row.
func (s *Screen[T]) OpenDelete(id int64) error {
	if _, ok := s.list.Find(id); !ok {
		return errs.NewRecordNotListedError(s.desc.Singular, id)
	}
	s.setDialog(DeleteConfirm{ID: id})
	return nil
}

// Cancel closes the dialog and discards its draft.
func (s *Screen[T]) Cancel() {
	s.setDialog(Closed{})
}

func (s *Screen[T]) Dialog() Dialog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dialog
}

func (s *Screen[T]) setDialog(d Dialog) {
	s.mu.Lock()
	s.dialog = d
	s.mu.Unlock()
}

// closeIf closes the dialog only when it is still the one the caller acted on.
func (s *Screen[T]) closeIf(d Dialog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dialog == d {
		s.dialog = Closed{}
	}
}

// Submit applies values to the open add or edit draft and sends it. Invalid
// drafts return errs.ValidationErrors without any request. On success the list
// is refetched and the dialog closes; on failure the draft stays as typed.
func (s *Screen[T]) Submit(ctx context.Context, values map[string]string) error {
	s.mu.Lock()
	current := s.dialog
	draft, ok := draftOf(current)
	if !ok {
		s.mu.Unlock()
		return errs.ErrNoDialogOpen
	}
	draft.Apply(values)
	payload, err := draft.Payload()
	s.mu.Unlock()
	if err != nil {
		return err
	}

	switch dialog := current.(type) {
	case AddOpen:
		result, err := s.gateway.Create(ctx, payload)
		if err != nil {
			s.notes.Error("Error", fmt.Sprintf("Failed to add %s.", s.desc.Singular))
			return err
		}
		s.closeIf(current)
		s.notes.Success("Success", summary(result.Summary(), "%s added successfully", s.desc.Singular))
	case EditOpen:
		result, err := s.gateway.Update(ctx, dialog.ID, payload)
		if err != nil {
			s.notes.Error("Error", fmt.Sprintf("Failed to update %s.", s.desc.Singular))
			return err
		}
		s.closeIf(current)
		s.notes.Success("Success", summary(result.Summary(), "%s updated successfully", s.desc.Singular))
	}
	return nil
}

// ConfirmDelete deletes the record held by the open delete confirmation.
func (s *Screen[T]) ConfirmDelete(ctx context.Context) error {
	current := s.Dialog()
	confirm, ok := current.(DeleteConfirm)
	if !ok {
		return errs.ErrNoDialogOpen
	}

	result, err := s.gateway.Delete(ctx, confirm.ID)
	if err != nil {
		s.notes.Error("Error", fmt.Sprintf("Failed to delete %s.", s.desc.Singular))
		return err
	}
	s.closeIf(current)
	s.notes.Success("Success", summary(result.Summary(), "%s deleted successfully", s.desc.Singular))
	return nil
}

// View snapshots everything needed to render the screen.
func (s *Screen[T]) View() View {
	items := s.list.Items()
	view := View{
		Key:      s.desc.Key,
		Title:    s.desc.Title,
		Singular: s.desc.Singular,
		Heading:  s.desc.Title,
		Loading:  s.list.Loading(),
		Loaded:   s.list.Loaded(),
		Columns:  columnsOf(s.desc.Fields),
		Rows:     make([]Row, 0, len(items)),
	}

	for _, item := range items {
		values, err := recordValues(s.desc.Fields, item)
		if err != nil {
			s.logger.Error().Err(err).Int64("id", item.EntityID()).Msg("error rendering row")
			continue
		}
		view.Rows = append(view.Rows, rowOf(item.EntityID(), s.desc.Fields, values))
	}

	if s.desc.Paged {
		from, to := s.list.Range()
		query := s.list.Query()
		view.Pager = &PagerView{
			From:        from,
			To:          to,
			Offset:      query.Offset,
			Limit:       query.Limit,
			CanPrevious: s.list.CanPrevious(),
			CanNext:     s.list.CanNext(),
		}
		view.Heading = pagedHeading(view.Loading, from, to, s.desc.Title)
	}

	view.Dialog = dialogView(s.dialogSnapshot(), s.desc.Singular)
	return view
}

// dialogSnapshot copies the open draft so it can be read without the lock.
func (s *Screen[T]) dialogSnapshot() Dialog {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch dialog := s.dialog.(type) {
	case AddOpen:
		return AddOpen{Draft: dialog.Draft.Clone()}
	case EditOpen:
		return EditOpen{ID: dialog.ID, Draft: dialog.Draft.Clone()}
	default:
		return s.dialog
	}
}

func summary(message, format, singular string) string {
	if message != "" {
		return message
	}
	return capitalize(fmt.Sprintf(format, singular))
}
