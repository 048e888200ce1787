package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsawler/docextract"
	"github.com/tsawler/docextract/convert"
	"github.com/tsawler/docextract/format"
	"github.com/tsawler/docextract/model"
	"github.com/tsawler/docextract/ocr"
)

func (a *app) load(cmd *cobra.Command, path string) (*docextract.Document, error) {
	doc := docextract.New(a.cfg)
	if err := doc.Load(cmd.Context(), path); err != nil {
		return nil, err
	}
	return doc, nil
}

func (a *app) convertCmd() *cobra.Command {
	var (
		output     string
		to         string
		useOCR     bool
		sanitize   bool
		omitImages bool
	)

	cmd := &cobra.Command{
		Use:   "convert <input>",
		Short: "Convert a document to text, HTML, Markdown or PDF",
		Long: `Convert loads a document and writes it with the selected converter.
The converter is chosen with --to, or from the output file extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := convert.Options{
				Sanitize:   sanitize,
				OmitImages: omitImages,
				Logger:     &a.logger,
			}
			if useOCR {
				client, err := ocr.New()
				if err != nil {
					return err
				}
				defer client.Close()
				opts.Recognizer = client
			}
			reg := convert.NewDefaultRegistry(opts)

			var conv convert.Converter
			var ok bool
			if to != "" {
				conv, ok = reg.Create(to)
				if !ok {
					return fmt.Errorf("unknown converter %q (available: %s)", to, strings.Join(reg.Names(), ", "))
				}
			} else {
				conv, ok = reg.ForExtension(filepath.Ext(output))
				if !ok {
					return fmt.Errorf("no converter for %q; use --to", output)
				}
			}

			doc, err := a.load(cmd, args[0])
			if err != nil {
				return err
			}
			if err := convert.ConvertFile(conv, doc, output); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%s, %d elements)\n", output, conv.Name(), len(doc.Elements()))
			if w := doc.Warnings(); len(w) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Warnings:\n%s\n", docextract.FormatWarnings(w))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file")
	cmd.Flags().StringVar(&to, "to", "", "converter name (text, html, markdown, pdf)")
	cmd.Flags().BoolVar(&useOCR, "ocr", false, "recognize text in images (text converter, needs -tags ocr)")
	cmd.Flags().BoolVar(&sanitize, "sanitize", false, "sanitize HTML output")
	cmd.Flags().BoolVar(&omitImages, "omit-images", false, "leave images out of HTML and Markdown output")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

// outline is the JSON form of a loaded document.
type outline struct {
	Title    string        `json:"title"`
	Format   string        `json:"format"`
	Elements []elementInfo `json:"elements"`
	Warnings []string      `json:"warnings,omitempty"`
}

type elementInfo struct {
	Type   string     `json:"type"`
	Text   string     `json:"text,omitempty"`
	Runs   []string   `json:"runs,omitempty"`
	Level  int        `json:"level,omitempty"`
	Rows   [][]string `json:"rows,omitempty"`
	Format string     `json:"format,omitempty"`
	Width  int        `json:"width,omitempty"`
	Height int        `json:"height,omitempty"`
	Bytes  int        `json:"bytes,omitempty"`
}

func describe(e model.Element) elementInfo {
	info := elementInfo{Type: e.Type().String()}
	switch el := e.(type) {
	case *model.Heading:
		info.Text = el.GetText()
		info.Level = el.Level()
	case *model.Paragraph:
		for _, t := range el.Texts() {
			info.Runs = append(info.Runs, t.GetText())
		}
	case *model.Text:
		info.Text = el.GetText()
	case *model.Table:
		info.Rows = make([][]string, 0, el.RowCount())
		for _, row := range el.Rows() {
			cells := make([]string, 0, len(row.Cells()))
			for _, c := range row.Cells() {
				cells = append(cells, c.Text())
			}
			info.Rows = append(info.Rows, cells)
		}
	case *model.Image:
		info.Format = el.Format()
		info.Width = el.Width()
		info.Height = el.Height()
		info.Bytes = len(el.Data())
	}
	return info
}

func (a *app) dumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump <input>",
		Short: "Print the extracted element outline as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.load(cmd, args[0])
			if err != nil {
				return err
			}

			out := outline{
				Title:    doc.Title(),
				Format:   doc.Format().String(),
				Elements: make([]elementInfo, 0, len(doc.Elements())),
			}
			for _, e := range doc.Elements() {
				out.Elements = append(out.Elements, describe(e))
			}
			for _, w := range doc.Warnings() {
				out.Warnings = append(out.Warnings, w.Error())
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
}

func (a *app) formatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List supported input formats and converters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()

			fmt.Fprintln(w, "Input formats:")
			for _, f := range []format.Format{format.DOCX, format.DOC, format.Text} {
				note := ""
				if f == format.Text && !a.cfg.AllowPlainText {
					note = " (disabled; set allow_plain_text)"
				}
				fmt.Fprintf(w, "  %-5s %s%s\n", f, f.Extension(), note)
			}

			fmt.Fprintln(w, "Converters:")
			reg := convert.NewDefaultRegistry(convert.Options{})
			for _, name := range reg.Names() {
				c, _ := reg.Create(name)
				fmt.Fprintf(w, "  %-9s .%s\n", name, strings.Join(c.Extensions(), ", ."))
			}

			if ocr.Enabled {
				fmt.Fprintln(w, "OCR: enabled")
			} else {
				fmt.Fprintln(w, "OCR: not compiled in (build with -tags ocr)")
			}
			return nil
		},
	}
}
