package model

import (
	"time"
)

// LoanPeriod is the fixed time a reader may keep a book. Every due date is
// borrow date plus this period.
const LoanPeriod = 14 * 24 * time.Hour

type Status string

const (
	StatusBorrowed Status = "borrowed"
	StatusOverdue  Status = "overdue"
	StatusReturned Status = "returned"
)

// DeriveStatus recomputes a lending status from its temporal facts. The
// stored status column is a cached projection of this function; every
// transition in the repository keeps the two in agreement. A set return
// date always wins, no matter how late the return was.
func DeriveStatus(dueDate time.Time, returnDate *time.Time, now time.Time) Status {
	if returnDate != nil {
		return StatusReturned
	}
	if now.After(dueDate) {
		return StatusOverdue
	}
	return StatusBorrowed
}

type Book struct {
	ID              int    `json:"-" db:"id"`
	BookUid         string `json:"bookUid" db:"book_uid"`
	Code            string `json:"code" db:"code"`
	Title           string `json:"title" db:"title"`
	Author          string `json:"author" db:"author"`
	ISBN            string `json:"isbn" db:"isbn"`
	Publisher       string `json:"publisher" db:"publisher"`
	PublicationYear int    `json:"publicationYear" db:"publication_year"`
	Genre           string `json:"genre" db:"genre"`
	Description     string `json:"description" db:"description"`
	CoverImage      string `json:"coverImage,omitempty" db:"cover_image"`
	TotalCopies     int    `json:"totalCopies" db:"total_copies"`
	AvailableCopies int    `json:"availableCopies" db:"available_copies"`
}

type CreateBookRequest struct {
	Title           string `json:"title" validate:"required"`
	Author          string `json:"author" validate:"required"`
	ISBN            string `json:"isbn" validate:"required"`
	Publisher       string `json:"publisher"`
	PublicationYear int    `json:"publicationYear"`
	Genre           string `json:"genre"`
	Description     string `json:"description"`
	CoverImage      string `json:"coverImage"`
	TotalCopies     int    `json:"totalCopies" validate:"required,min=1"`
}

type UpdateBookRequest struct {
	Title           *string `json:"title"`
	Author          *string `json:"author"`
	ISBN            *string `json:"isbn"`
	Publisher       *string `json:"publisher"`
	PublicationYear *int    `json:"publicationYear"`
	Genre           *string `json:"genre"`
	Description     *string `json:"description"`
	CoverImage      *string `json:"coverImage"`
	TotalCopies     *int    `json:"totalCopies" validate:"omitempty,min=1"`
}

type Reader struct {
	ID             int       `json:"-" db:"id"`
	ReaderUid      string    `json:"readerUid" db:"reader_uid"`
	Code           string    `json:"code" db:"code"`
	Name           string    `json:"name" db:"name"`
	Email          string    `json:"email" db:"email"`
	Phone          string    `json:"phone" db:"phone"`
	Address        string    `json:"address" db:"address"`
	MembershipDate time.Time `json:"membershipDate" db:"membership_date"`
}

type CreateReaderRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type UpdateReaderRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

type Lending struct {
	ID         int        `json:"-" db:"id"`
	LendingUid string     `json:"lendingUid" db:"lending_uid"`
	Code       string     `json:"code" db:"code"`
	BookUid    string     `json:"bookId" db:"book_uid"`
	ReaderUid  string     `json:"readerId" db:"reader_uid"`
	BorrowDate time.Time  `json:"borrowDate" db:"borrow_date"`
	DueDate    time.Time  `json:"dueDate" db:"due_date"`
	ReturnDate *time.Time `json:"returnDate,omitempty" db:"return_date"`
	Status     Status     `json:"status" db:"status"`
}

type CreateLendingRequest struct {
	BookUid   string `json:"bookId" validate:"required,uuid"`
	ReaderUid string `json:"readerId" validate:"required,uuid"`
}

type LendingFilter struct {
	Status    Status
	BookUid   string
	ReaderUid string
}

// OverdueNotice carries everything needed to build one overdue e-mail.
type OverdueNotice struct {
	LendingUid  string     `db:"lending_uid"`
	ReaderName  string     `db:"reader_name"`
	ReaderEmail string     `db:"reader_email"`
	BookTitle   string     `db:"book_title"`
	BookAuthor  string     `db:"book_author"`
	DueDate     time.Time  `db:"due_date"`
	ReturnDate  *time.Time `db:"return_date"`
}

type NotifyResult struct {
	LendingUid string `json:"lendingUid"`
	Reader     string `json:"reader"`
	Status     string `json:"status"`
	Error      string `json:"error,omitempty"`
}

type NotifyTally struct {
	Message string         `json:"message"`
	Sent    int            `json:"sent"`
	Failed  int            `json:"failed"`
	Results []NotifyResult `json:"results"`
}

type DashboardStats struct {
	TotalBooks     int `json:"totalBooks" db:"total_books"`
	AvailableBooks int `json:"availableBooks" db:"available_books"`
	TotalReaders   int `json:"totalReaders" db:"total_readers"`
	OverdueBooks   int `json:"overdueBooks" db:"overdue_books"`
}

// AuditEvent is the message published to the audit topic after a mutation.
type AuditEvent struct {
	Action   string    `json:"action"`
	Actor    string    `json:"actor"`
	Entity   string    `json:"entity"`
	EntityID string    `json:"entityId"`
	Details  string    `json:"details"`
	At       time.Time `json:"at"`
}

type AuditEntry struct {
	ID        int64     `json:"id" db:"id"`
	Action    string    `json:"action" db:"action"`
	Actor     string    `json:"actor" db:"actor"`
	Entity    string    `json:"entity" db:"entity"`
	EntityID  string    `json:"entityId" db:"entity_id"`
	Details   string    `json:"details" db:"details"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
