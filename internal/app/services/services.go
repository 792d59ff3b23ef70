package services

// Services defined in this package:
// - EventService: the event aggregate with its owned children and mentor links
// - ParticipantService: event registrations and certificates
// - CommentService: discussion comments, reply threads and likes
// - MentorService: the mentor directory
