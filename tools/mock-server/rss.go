package main

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type rssDocument struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title string    `xml:"title"`
	Link  string    `xml:"link"`
	Items []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	GUID        string `xml:"guid"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
}

const rssContentType = "application/rss+xml; charset=utf-8"

func renderRSS(c echo.Context, title, link string, items []rssItem) error {
	body, err := xml.Marshal(rssDocument{
		Version: "2.0",
		Channel: rssChannel{Title: title, Link: link, Items: items},
	})
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, rssContentType, append([]byte(xml.Header), body...))
}

func pubDate(t time.Time) string {
	return t.UTC().Format(time.RFC1123Z)
}
