package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driving"
	"github.com/custodia-labs/folio-cli/internal/logger"
)

// Ensure Dispatcher implements the interface.
var _ driving.Dispatcher = (*Dispatcher)(nil)

// handlerFunc executes one decoded command.
type handlerFunc func(ctx context.Context, cmd domain.Command) (domain.Result, error)

// Dispatcher routes typed commands to the builder, export and share services.
type Dispatcher struct {
	builder  driving.BuilderService
	exporter driving.ExportService
	share    driving.ShareService
	actions  driving.ActionService

	handlers map[domain.Action]handlerFunc
}

// NewDispatcher creates a dispatcher. exporter, share and actions may be
// nil; the commands that need them then fail with ErrNotImplemented.
func NewDispatcher(
	builder driving.BuilderService,
	exporter driving.ExportService,
	share driving.ShareService,
	actions driving.ActionService,
) *Dispatcher {
	d := &Dispatcher{
		builder:  builder,
		exporter: exporter,
		share:    share,
		actions:  actions,
	}
	d.handlers = map[domain.Action]handlerFunc{
		domain.ActionAddSection:          handle(d.addSection),
		domain.ActionUpdateSection:       handle(d.updateSection),
		domain.ActionRemoveSection:       handle(d.removeSection),
		domain.ActionReorderSections:     handle(d.reorderSections),
		domain.ActionSelectSection:       handle(d.selectSection),
		domain.ActionUpdateCustomization: handle(d.updateCustomization),
		domain.ActionUndo:                handle(d.undo),
		domain.ActionRedo:                handle(d.redo),
		domain.ActionSave:                handle(d.save),
		domain.ActionLoadTemplate:        handle(d.loadTemplate),
		domain.ActionClearTemplate:       handle(d.clearTemplate),
		domain.ActionImportPortfolio:     handle(d.importPortfolio),
		domain.ActionExportJSON:          handle(d.exportJSON),
		domain.ActionExportHTML:          handle(d.exportHTML),
		domain.ActionExportPDF:           handle(d.exportPDF),
		domain.ActionShareLink:           handle(d.shareLink),
		domain.ActionLoadShareLink:       handle(d.loadShareLink),
	}
	return d
}

// handle adapts a typed handler to the table signature. Commands are
// accepted by value or by pointer.
func handle[C domain.Command](fn func(context.Context, C) (domain.Result, error)) handlerFunc {
	return func(ctx context.Context, cmd domain.Command) (domain.Result, error) {
		switch c := any(cmd).(type) {
		case C:
			return fn(ctx, c)
		case *C:
			if c != nil {
				return fn(ctx, *c)
			}
		}
		return domain.Result{}, fmt.Errorf("%w: command %T", domain.ErrInvalidInput, cmd)
	}
}

// Actions lists every action the dispatcher handles.
func (d *Dispatcher) Actions() []domain.Action {
	return domain.AllActions()
}

// Dispatch executes cmd. A failed command returns its error together with a
// Result carrying a failure notice.
func (d *Dispatcher) Dispatch(ctx context.Context, cmd domain.Command) (domain.Result, error) {
	if cmd == nil {
		return domain.Result{Notice: domain.Failure("No command given")},
			fmt.Errorf("%w: nil command", domain.ErrInvalidInput)
	}
	action := cmd.Action()
	h, ok := d.handlers[action]
	if !ok {
		return domain.Result{Action: action, Notice: domain.Failure("Unknown action")},
			fmt.Errorf("%w: action %q", domain.ErrUnsupportedType, action)
	}

	logger.Debug("dispatch %s", action)
	res, err := h(ctx, cmd)
	res.Action = action
	if err != nil && res.Notice.IsZero() {
		res.Notice = failureNotice(err)
	}
	return res, err
}

// failureNotice maps an error to the notice shown for it.
func failureNotice(err error) domain.Notice {
	switch {
	case errors.Is(err, domain.ErrNothingToUndo):
		return domain.Warning("Nothing to undo")
	case errors.Is(err, domain.ErrNothingToRedo):
		return domain.Warning("Nothing to redo")
	case errors.Is(err, domain.ErrNotImplemented):
		return domain.Info("This feature is not available yet")
	case errors.Is(err, domain.ErrNotFound):
		return domain.Failure("Not found: " + err.Error())
	case errors.Is(err, domain.ErrInvalidShareLink):
		return domain.Failure("Failed to load shared portfolio")
	case errors.Is(err, domain.ErrStorageUnavailable):
		return domain.Failure("Storage is unavailable")
	default:
		return domain.Failure(err.Error())
	}
}

func (d *Dispatcher) addSection(ctx context.Context, c domain.AddSectionCommand) (domain.Result, error) {
	section, err := d.builder.NewSection(c.Type)
	if err != nil {
		return domain.Result{}, err
	}
	if c.ID != "" {
		section.ID = c.ID
	}
	if c.Title != "" {
		section.Title = c.Title
	}
	if c.Content != nil {
		section.Content = c.Content
	}
	added, err := d.builder.AddSection(ctx, section)
	if err != nil {
		return domain.Result{}, err
	}
	return domain.Result{Notice: domain.Success("Section added successfully!"), Section: &added}, nil
}

func (d *Dispatcher) updateSection(ctx context.Context, c domain.UpdateSectionCommand) (domain.Result, error) {
	updated, err := d.builder.UpdateSection(ctx, c.ID, c.Patch)
	if err != nil {
		return domain.Result{}, err
	}
	return domain.Result{Notice: domain.Success("Section updated"), Section: &updated}, nil
}

func (d *Dispatcher) removeSection(ctx context.Context, c domain.RemoveSectionCommand) (domain.Result, error) {
	if err := d.builder.RemoveSection(ctx, c.ID); err != nil {
		return domain.Result{}, err
	}
	return domain.Result{Notice: domain.Success("Section deleted")}, nil
}

func (d *Dispatcher) reorderSections(ctx context.Context, c domain.ReorderSectionsCommand) (domain.Result, error) {
	if err := d.builder.ReorderSections(ctx, c.From, c.To); err != nil {
		return domain.Result{}, err
	}
	return domain.Result{Notice: domain.Success("Sections reordered")}, nil
}

func (d *Dispatcher) selectSection(ctx context.Context, c domain.SelectSectionCommand) (domain.Result, error) {
	if err := d.builder.SelectSection(ctx, c.ID); err != nil {
		return domain.Result{}, err
	}
	if c.ID == "" {
		return domain.Result{Notice: domain.Info("Selection cleared")}, nil
	}
	section, err := d.builder.Section(c.ID)
	if err != nil {
		return domain.Result{}, err
	}
	return domain.Result{Notice: domain.Info("Selected " + section.Heading()), Section: section}, nil
}

func (d *Dispatcher) updateCustomization(ctx context.Context, c domain.UpdateCustomizationCommand) (domain.Result, error) {
	if _, err := d.builder.UpdateCustomization(ctx, c.Patch); err != nil {
		return domain.Result{}, err
	}
	return domain.Result{Notice: domain.Success("Customization updated")}, nil
}

func (d *Dispatcher) undo(ctx context.Context, _ domain.UndoCommand) (domain.Result, error) {
	// The notice names the change being reverted, not the entry restored.
	undone, _ := d.builder.History().Current()
	if _, err := d.builder.Undo(ctx); err != nil {
		return domain.Result{}, err
	}
	return domain.Result{Notice: domain.Info("Undo: " + undone.Action)}, nil
}

func (d *Dispatcher) redo(ctx context.Context, _ domain.RedoCommand) (domain.Result, error) {
	entry, err := d.builder.Redo(ctx)
	if err != nil {
		return domain.Result{}, err
	}
	return domain.Result{Notice: domain.Info("Redo: " + entry.Action)}, nil
}

func (d *Dispatcher) save(ctx context.Context, _ domain.SaveCommand) (domain.Result, error) {
	if _, err := d.builder.Save(ctx); err != nil {
		return domain.Result{}, err
	}
	return domain.Result{Notice: domain.Success("Portfolio saved!")}, nil
}

func (d *Dispatcher) loadTemplate(ctx context.Context, c domain.LoadTemplateCommand) (domain.Result, error) {
	tpl, err := d.builder.LoadTemplate(ctx, c.TemplateID)
	if err != nil {
		return domain.Result{}, err
	}
	return domain.Result{Notice: domain.Success(fmt.Sprintf("Template %q loaded", tpl.Name))}, nil
}

func (d *Dispatcher) clearTemplate(ctx context.Context, _ domain.ClearTemplateCommand) (domain.Result, error) {
	if err := d.builder.ClearTemplate(ctx); err != nil {
		return domain.Result{}, err
	}
	return domain.Result{Notice: domain.Info("Started from a blank portfolio")}, nil
}

func (d *Dispatcher) importPortfolio(ctx context.Context, c domain.ImportPortfolioCommand) (domain.Result, error) {
	if d.exporter == nil {
		return domain.Result{}, fmt.Errorf("import: %w", domain.ErrNotImplemented)
	}
	if err := d.exporter.ImportJSON(ctx, c.Data); err != nil {
		return domain.Result{Notice: domain.Failure("Failed to import portfolio")}, err
	}
	return domain.Result{Notice: domain.Success("Portfolio imported!")}, nil
}

func (d *Dispatcher) exportJSON(ctx context.Context, _ domain.ExportJSONCommand) (domain.Result, error) {
	if d.exporter == nil {
		return domain.Result{}, fmt.Errorf("export json: %w", domain.ErrNotImplemented)
	}
	data, err := d.exporter.ExportJSON(ctx)
	if err != nil {
		return domain.Result{}, err
	}
	res := domain.Result{Notice: domain.Success("Portfolio exported as JSON!"), Output: string(data)}
	if d.actions != nil {
		if err := d.actions.CopyToClipboard(ctx, res.Output); err == nil {
			res.Notice = domain.Success("Portfolio data copied to clipboard!")
		} else {
			logger.Debug("clipboard unavailable: %v", err)
		}
	}
	return res, nil
}

func (d *Dispatcher) exportHTML(ctx context.Context, c domain.ExportHTMLCommand) (domain.Result, error) {
	if d.exporter == nil {
		return domain.Result{}, fmt.Errorf("export html: %w", domain.ErrNotImplemented)
	}
	path, err := d.exporter.ExportHTML(ctx, c.Dir)
	if err != nil {
		return domain.Result{}, err
	}
	return domain.Result{Notice: domain.Success("Portfolio exported as HTML!"), Path: path}, nil
}

func (d *Dispatcher) exportPDF(ctx context.Context, _ domain.ExportPDFCommand) (domain.Result, error) {
	if d.exporter == nil {
		return domain.Result{}, fmt.Errorf("export pdf: %w", domain.ErrNotImplemented)
	}
	err := d.exporter.ExportPDF(ctx)
	if errors.Is(err, domain.ErrNotImplemented) {
		return domain.Result{Notice: domain.Info("PDF export coming soon!")}, err
	}
	return domain.Result{}, err
}

func (d *Dispatcher) shareLink(ctx context.Context, c domain.ShareLinkCommand) (domain.Result, error) {
	if d.share == nil {
		return domain.Result{}, fmt.Errorf("share link: %w", domain.ErrNotImplemented)
	}
	if _, err := d.builder.Save(ctx); err != nil {
		if !errors.Is(err, domain.ErrStorageUnavailable) {
			return domain.Result{}, err
		}
		logger.Warn("sharing without saving: %v", err)
	}
	link, err := d.share.Link(ctx)
	if err != nil {
		return domain.Result{}, err
	}
	res := domain.Result{Notice: domain.Success("Share link created"), Output: link}
	if c.Copy && d.actions != nil {
		if err := d.actions.CopyToClipboard(ctx, link); err != nil {
			logger.Warn("copying share link: %v", err)
			res.Notice = domain.Warning("Share link created, but the clipboard is unavailable")
		} else {
			res.Notice = domain.Success("Share link copied to clipboard!")
		}
	}
	return res, nil
}

func (d *Dispatcher) loadShareLink(ctx context.Context, c domain.LoadShareLinkCommand) (domain.Result, error) {
	if d.share == nil {
		return domain.Result{}, fmt.Errorf("load share link: %w", domain.ErrNotImplemented)
	}
	if err := d.share.Load(ctx, c.Link); err != nil {
		return domain.Result{Notice: domain.Failure("Failed to load shared portfolio")}, err
	}
	return domain.Result{Notice: domain.Success("Shared portfolio loaded!")}, nil
}
