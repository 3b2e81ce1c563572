package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/newsgrab"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	content, err := deps.Contents.FindContentByID(deps.Ctx, c.ID)
	if err == nil {
		return c.showContent(deps, content)
	}
	if newsgrab.ErrorCode(err) != newsgrab.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsgrab.ErrorMessage(err))
		return err
	}

	article, err := deps.Articles.FindArticleByID(deps.Ctx, c.ID)
	if err != nil {
		if newsgrab.ErrorCode(err) == newsgrab.ENOTFOUND {
			err = newsgrab.Errorf(newsgrab.ENOTFOUND, "no content or article with id %q", c.ID)
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsgrab.ErrorMessage(err))
		return err
	}
	c.showArticle(deps, article)
	return nil
}

func (c *ShowCmd) showContent(deps *Dependencies, ct *newsgrab.Content) error {
	w := deps.Stdout
	fmt.Fprintf(w, "Content   %s\n", ct.ID)
	fmt.Fprintf(w, "Source    %s\n", ct.Source)
	fmt.Fprintf(w, "URL       %s\n", ct.URL)
	fmt.Fprintf(w, "Feed      %s\n", ct.URLRSS)
	fmt.Fprintf(w, "Published %s\n", formatDate(ct.PubTS, deps.Location))
	fmt.Fprintf(w, "Parser    %s\n", ct.ParserClassname)
	fmt.Fprintf(w, "Stored    %s\n", ct.CreatedAt.Format(time.RFC3339))
	if ct.ArticleID != "" {
		fmt.Fprintf(w, "Promoted  from article %s\n", ct.ArticleID)
	}

	if deps.Revisits != nil {
		revisits, err := deps.Revisits.FindRevisits(deps.Ctx, newsgrab.RevisitFilter{ContentID: &ct.ID})
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", newsgrab.ErrorMessage(err))
			return err
		}
		for _, r := range revisits {
			state := "unchanged"
			if r.Changed {
				state = "changed"
			}
			fmt.Fprintf(w, "Revisit   %s %s\n", r.CreatedAt.Format(time.RFC3339), state)
		}
	}

	fmt.Fprintln(w)
	if !c.Markdown {
		fmt.Fprintf(w, "%s\n\n%s\n", ct.Title, ct.Text)
		return nil
	}

	md, err := deps.Markdown.ConvertContent(ct)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsgrab.ErrorMessage(err))
		return err
	}
	fmt.Fprint(w, md)
	return nil
}

func (c *ShowCmd) showArticle(deps *Dependencies, a *newsgrab.Article) {
	w := deps.Stdout
	fmt.Fprintf(w, "Article   %s\n", a.ID)
	fmt.Fprintf(w, "Source    %s\n", a.Source)
	fmt.Fprintf(w, "URL       %s\n", a.URL)
	fmt.Fprintf(w, "Feed      %s\n", a.URLRSS)
	fmt.Fprintf(w, "Published %s\n", formatDate(a.PubTS, deps.Location))
	fmt.Fprintf(w, "Parser    %s\n", a.ParserClassname)
	fmt.Fprintf(w, "Error     %s\n", a.ParseError)
	fmt.Fprintf(w, "Attempts  %d\n", a.Attempts)
	fmt.Fprintf(w, "Response  %d bytes, md5 %s\n", len(a.Response), a.ResponseMD5)
}
