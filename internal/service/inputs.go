package service

import (
	"strings"
	"time"

	"github.com/odm275/dev-network/internal/models"
)

const dateLayout = "2006-01-02"

type RegisterInput struct {
	Name      string `json:"name" validate:"required,min=2,max=30"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6,max=30"`
	Password2 string `json:"password2" validate:"omitempty,eqfield=Password"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ProfileInput is a profile upsert. Nil optional fields leave the stored
// value untouched. Skills is a comma separated list. Call normalized before
// validating.
type ProfileInput struct {
	Handle         *string `json:"handle" validate:"required,min=2,max=40"`
	Status         *string `json:"status" validate:"required"`
	Skills         *string `json:"skills" validate:"required"`
	Company        *string `json:"company" validate:"omitempty,max=100"`
	Website        *string `json:"website" validate:"omitempty,url"`
	Location       *string `json:"location" validate:"omitempty,max=100"`
	Bio            *string `json:"bio" validate:"omitempty,max=1000"`
	GithubUsername *string `json:"githubusername" validate:"omitempty,max=39"`
	Youtube        *string `json:"youtube" validate:"omitempty,url"`
	Twitter        *string `json:"twitter" validate:"omitempty,url"`
	Facebook       *string `json:"facebook" validate:"omitempty,url"`
	Linkedin       *string `json:"linkedin" validate:"omitempty,url"`
	Instagram      *string `json:"instagram" validate:"omitempty,url"`
}

func (in ProfileInput) update() models.ProfileUpdate {
	u := models.ProfileUpdate{
		Handle:         in.Handle,
		Status:         in.Status,
		Company:        in.Company,
		Website:        in.Website,
		Location:       in.Location,
		Bio:            in.Bio,
		GithubUsername: in.GithubUsername,
	}
	if in.Skills != nil {
		u.Skills = SplitSkills(*in.Skills)
	}

	social := map[string]*string{
		"youtube":   in.Youtube,
		"twitter":   in.Twitter,
		"facebook":  in.Facebook,
		"linkedin":  in.Linkedin,
		"instagram": in.Instagram,
	}
	for _, platform := range models.SocialPlatforms {
		if link := social[platform]; link != nil && *link != "" {
			if u.Social == nil {
				u.Social = map[string]string{}
			}
			u.Social[platform] = *link
		}
	}
	return u
}

// SplitSkills turns "go, sql,,react" into [go sql react].
func SplitSkills(raw string) []string {
	skills := make([]string, 0)
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}

// normalized trims every field. Blank required fields become nil so that
// validation reports them missing, and blank optional fields become nil so
// they leave the stored value alone.
func (in ProfileInput) normalized() ProfileInput {
	out := in
	out.Handle = blankToNil(in.Handle)
	out.Status = blankToNil(in.Status)
	out.Skills = blankToNil(in.Skills)
	if out.Skills != nil && len(SplitSkills(*out.Skills)) == 0 {
		out.Skills = nil
	}

	for _, field := range []**string{
		&out.Company, &out.Website, &out.Location, &out.Bio, &out.GithubUsername,
		&out.Youtube, &out.Twitter, &out.Facebook, &out.Linkedin, &out.Instagram,
	} {
		*field = blankToNil(*field)
	}
	return out
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

type ExperienceInput struct {
	Title       string `json:"title" validate:"required,max=100"`
	Company     string `json:"company" validate:"required,max=100"`
	Location    string `json:"location" validate:"omitempty,max=100"`
	From        string `json:"from" validate:"required,datetime=2006-01-02"`
	To          string `json:"to" validate:"omitempty,datetime=2006-01-02"`
	Current     bool   `json:"current"`
	Description string `json:"description" validate:"omitempty,max=1000"`
}

func (in ExperienceInput) entry() models.Experience {
	from, to := dateRange(in.From, in.To, in.Current)
	return models.Experience{
		Title:       in.Title,
		Company:     in.Company,
		Location:    in.Location,
		From:        from,
		To:          to,
		Current:     in.Current,
		Description: in.Description,
	}
}

type EducationInput struct {
	School       string `json:"school" validate:"required,max=100"`
	Degree       string `json:"degree" validate:"required,max=100"`
	FieldOfStudy string `json:"fieldofstudy" validate:"required,max=100"`
	From         string `json:"from" validate:"required,datetime=2006-01-02"`
	To           string `json:"to" validate:"omitempty,datetime=2006-01-02"`
	Current      bool   `json:"current"`
	Description  string `json:"description" validate:"omitempty,max=1000"`
}

func (in EducationInput) entry() models.Education {
	from, to := dateRange(in.From, in.To, in.Current)
	return models.Education{
		School:       in.School,
		Degree:       in.Degree,
		FieldOfStudy: in.FieldOfStudy,
		From:         from,
		To:           to,
		Current:      in.Current,
		Description:  in.Description,
	}
}

// dateRange parses already validated dates. A current entry has no end.
func dateRange(rawFrom, rawTo string, current bool) (time.Time, *time.Time) {
	from, _ := time.Parse(dateLayout, rawFrom)
	if current || rawTo == "" {
		return from, nil
	}
	to, _ := time.Parse(dateLayout, rawTo)
	return from, &to
}

type PostInput struct {
	Text   string `json:"text" validate:"required,max=300"`
	Name   string `json:"name" validate:"omitempty,max=30"`
	Avatar string `json:"avatar" validate:"omitempty,url"`
}

type CommentInput struct {
	Text   string `json:"text" validate:"required,max=300"`
	Name   string `json:"name" validate:"omitempty,max=30"`
	Avatar string `json:"avatar" validate:"omitempty,url"`
}
