package sources

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/prashikshan/newstrends/app/article"
)

const (
	// imageFetchTimeout bounds each secondary page fetch; it is deliberately
	// shorter than the primary feed fetch so a slow article page cannot eat
	// the adapter's whole budget.
	imageFetchTimeout = 5 * time.Second
	imageWorkerCount  = 4
)

// ImageResolver backfills missing article thumbnails by fetching each
// article's own page and reading its social preview meta tags.
type ImageResolver struct {
	client    *http.Client
	userAgent string
}

func NewImageResolver(client *http.Client, userAgent string) *ImageResolver {
	return &ImageResolver{client: client, userAgent: userAgent}
}

// Backfill fills the Image field of every image-less article in place,
// fanning the page fetches across a small worker pool. Best effort: articles
// whose pages yield nothing keep an empty image.
func (r *ImageResolver) Backfill(ctx context.Context, articles []article.Article) {
	pending := make([]int, 0, len(articles))
	for i := range articles {
		if articles[i].Image == "" && articles[i].Link != article.UnknownLink && articles[i].Link != "" {
			pending = append(pending, i)
		}
	}
	if len(pending) == 0 {
		return
	}

	jobs := make(chan int, len(pending))
	for _, i := range pending {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	for w := 0; w < imageWorkerCount; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if img := r.Resolve(ctx, articles[i].Link); img != "" {
					articles[i].Image = img
				}
			}
		}()
	}
	wg.Wait()
}

// Resolve fetches one page and extracts its og:image or twitter:image URL.
func (r *ImageResolver) Resolve(ctx context.Context, pageURL string) string {
	timeoutCtx, cancel := context.WithTimeout(ctx, imageFetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", pageURL, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return ""
	}

	if img := metaContent(doc, `meta[property="og:image"]`); img != "" {
		return absoluteImageURL(img, pageURL)
	}
	if img := metaContent(doc, `meta[name="twitter:image"]`); img != "" {
		return absoluteImageURL(img, pageURL)
	}

	return ""
}

func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(content)
}

// absoluteImageURL resolves protocol-relative and rooted image paths against
// the page they came from.
func absoluteImageURL(img, pageURL string) string {
	if strings.HasPrefix(img, "//") {
		return "https:" + img
	}
	if strings.HasPrefix(img, "/") {
		page, err := url.Parse(pageURL)
		if err != nil {
			return img
		}
		return page.Scheme + "://" + page.Host + img
	}
	return img
}
