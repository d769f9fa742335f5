// Package seed 灌入只读目录（分类 + 灵感库）。
//
// 目录来源可以是内置 JSON、本地文件或 S3 对象；Apply 在一个事务里整体替换，
// 想法 ID 由 slug + 标题确定性生成，重灌后已有条目的 sourceLibraryIdeaId 仍然有效。
package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"bucketlist/internal/domain"
)

//go:embed catalog.json
var embeddedCatalog []byte

type IdeaSeed struct {
	Title       string   `json:"title"       validate:"required,max=200"`
	Description string   `json:"description" validate:"max=1000"`
	Tags        []string `json:"tags"        validate:"max=10,dive,required,max=50,excludes=0x7C"`
}

type CategorySeed struct {
	Name        string     `json:"name"        validate:"required,max=50"`
	Slug        string     `json:"slug"        validate:"required,max=50,slug"`
	Order       int        `json:"order"       validate:"gte=0"`
	Description string     `json:"description" validate:"max=500"`
	Ideas       []IdeaSeed `json:"ideas"       validate:"dive"`
}

type File struct {
	Categories []CategorySeed `json:"categories" validate:"required,min=1,dive"`
}

var (
	slugRe   = regexp.MustCompile(`^[a-z0-9-]+$`)
	validate = newValidator()

	// ideaNamespace 固定命名空间，保证 ID 可复现
	ideaNamespace = uuid.MustParse("6f1c2a8e-4b5d-4e0f-9a43-2d6b8c1e7f90")
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugRe.MatchString(fl.Field().String())
	})
	return v
}

func Parse(r io.Reader) (*File, error) {
	var f File
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *File) Validate() error {
	if err := validate.Struct(f); err != nil {
		return fmt.Errorf("invalid catalog: %w", err)
	}
	orders := map[int]string{}
	slugs := map[string]bool{}
	for _, c := range f.Categories {
		if prev, ok := orders[c.Order]; ok {
			return fmt.Errorf("invalid catalog: categories %q and %q share order %d", prev, c.Slug, c.Order)
		}
		orders[c.Order] = c.Slug
		if slugs[c.Slug] {
			return fmt.Errorf("invalid catalog: duplicate slug %q", c.Slug)
		}
		slugs[c.Slug] = true
	}
	return nil
}

func CategoryID(slug string) string {
	return uuid.NewSHA1(ideaNamespace, []byte("category/"+slug)).String()
}

func IdeaID(slug, title string) string {
	return uuid.NewSHA1(ideaNamespace, []byte("idea/"+slug+"/"+title)).String()
}

// Build 展开为可落库的实体
func (f *File) Build() ([]domain.Category, []domain.LibraryIdea) {
	var (
		cats  []domain.Category
		ideas []domain.LibraryIdea
	)
	for _, c := range f.Categories {
		cid := CategoryID(c.Slug)
		cats = append(cats, domain.Category{
			ID:          cid,
			Name:        c.Name,
			Slug:        c.Slug,
			Order:       c.Order,
			Description: c.Description,
		})
		for _, i := range c.Ideas {
			tags := append([]string{}, i.Tags...)
			ideas = append(ideas, domain.LibraryIdea{
				ID:          IdeaID(c.Slug, i.Title),
				CategoryID:  cid,
				Title:       i.Title,
				Description: i.Description,
				Tags:        tags,
			})
		}
	}
	return cats, ideas
}
